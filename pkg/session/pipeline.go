package session

import (
	"context"
	"net/http"
	"sync"

	"github.com/terryfox-lims/limsclient/pkg/httpclient"
	"github.com/terryfox-lims/limsclient/pkg/logger"
)

// Interceptable is an HTTP client that accepts request and response hooks.
type Interceptable interface {
	UseRequest(hook httpclient.RequestHook) httpclient.Handle
	UseResponse(hook httpclient.ResponseHook) httpclient.Handle
	Eject(h httpclient.Handle) bool
}

// Pipeline is the pair of hooks binding a Manager to an HTTP client.
type Pipeline struct {
	client   Interceptable
	request  httpclient.Handle
	response httpclient.Handle
	once     sync.Once
}

// InstallPipeline registers the credential and forced-logout hooks on client.
//
// The outgoing hook reads the token from m at send time and sets the bearer
// header unless the request already carries an Authorization header. The
// incoming hook logs m out on any 401 response; the response still reaches the
// caller.
func InstallPipeline(client Interceptable, m *Manager) *Pipeline {
	p := &Pipeline{client: client}

	p.request = client.UseRequest(func(req *http.Request) error {
		if req.Header.Get("Authorization") != "" {
			return nil
		}
		if token := m.store.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	})

	p.response = client.UseResponse(func(req *http.Request, resp *http.Response, err error) {
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			return
		}
		// the caller's context may already be canceled once it sees the 401
		ctx := context.WithoutCancel(req.Context())
		m.logger.InfoContext(ctx, "forced logout",
			logger.StatusCode(resp.StatusCode),
			logger.Method(req.Method),
			logger.URL(req.URL.Redacted()),
		)
		_ = m.Logout(ctx)
	})

	return p
}

// Teardown removes both hooks. Safe to call more than once.
func (p *Pipeline) Teardown() {
	p.once.Do(func() {
		p.client.Eject(p.request)
		p.client.Eject(p.response)
	})
}
