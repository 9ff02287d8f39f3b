package httpclient

import "net/http"

// hookTransport runs the registered hooks around the wrapped RoundTripper.
type hookTransport struct {
	base  http.RoundTripper
	hooks *hookSet
}

func (t *hookTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestHooks, responseHooks := t.hooks.snapshot()

	// RoundTrippers must not mutate the caller's request.
	out := req.Clone(req.Context())

	var (
		resp *http.Response
		err  error
	)
	for _, hook := range requestHooks {
		if err = hook(out); err != nil {
			break
		}
	}
	if err == nil {
		resp, err = t.base.RoundTrip(out)
	} else if req.Body != nil {
		_ = req.Body.Close()
	}

	for _, hook := range responseHooks {
		hook(out, resp, err)
	}
	return resp, err
}
