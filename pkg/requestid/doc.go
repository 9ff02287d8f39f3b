// Package requestid correlates outgoing API calls with client-side log records.
//
// Stamp is a request hook for the shared API client: it sets the
// "X-Request-ID" header on every outgoing request, reusing the id carried by
// the request context or generating a UUIDv4. The same id can be attached to a
// context with WithContext (or WithNew) so log records written during the call
// carry it through LoggerExtractor.
//
//	client.UseRequest(requestid.Stamp)
//
//	ctx, id := requestid.WithNew(ctx)
//	log.InfoContext(ctx, "fetching profile") // includes request_id=<id>
package requestid
