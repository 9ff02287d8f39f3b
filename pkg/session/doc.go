// Package session is the client-side session and authorization core.
//
// A Store holds the authentication State and changes it only through Actions
// applied by the pure Reduce function, so every observable State is one of a
// small set of coherent shapes. A Manager drives the store: Login exchanges
// credentials for a token and fetches the profile, Logout erases the persisted
// credential, and Bootstrap resolves the profile for a token persisted by an
// earlier run.
//
// InstallPipeline couples the store to an HTTP client with interception hooks:
// outgoing requests get "Authorization: Bearer <token>" read from the store at
// send time, and any 401 response forces a logout.
//
// Typical wiring:
//
//	api, _ := httpclient.New(cfg.API.BaseURL)
//	creds, closeCreds, _ := credential.Open(ctx, cfg.Credential)
//	defer closeCreds()
//
//	mgr, err := session.New(ctx, identity.NewClient(api), creds, session.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	defer mgr.Close()
//
//	if err := mgr.Start(ctx, api); err != nil {
//		// persisted token was rejected; the session is now logged out
//	}
//
//	if err := mgr.Login(ctx, "alice", password); err != nil {
//		var lerr *session.LoginError
//		errors.As(err, &lerr) // lerr.Message is what State().Error shows
//	}
package session
