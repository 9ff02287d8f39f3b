// Package httpclient provides the shared HTTP client used to talk to the
// laboratory API. It resolves request paths against a base URL configured once
// at construction and exposes interception hooks that run for every request
// sent through the client.
//
// # Hooks
//
// Request hooks run before a request leaves the process, in registration
// order, and may modify headers or abort the request by returning an error.
// Response hooks observe every outcome (a response or a transport error) after
// it is received. They cannot replace the outcome: the caller always sees the
// original response or error.
//
// Registering a hook returns a Handle; passing the handle to Eject removes the
// hook again:
//
//	client, err := httpclient.New("https://lims.example.org/api")
//	if err != nil {
//	    return err
//	}
//
//	h := client.UseRequest(func(req *http.Request) error {
//	    req.Header.Set("X-Client", "limsctl")
//	    return nil
//	})
//	defer client.Eject(h)
//
// # Errors
//
// Non-2xx responses are returned as *HTTPError carrying the status code and a
// bounded copy of the response body:
//
//	var httpErr *httpclient.HTTPError
//	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
//	    // ...
//	}
package httpclient
