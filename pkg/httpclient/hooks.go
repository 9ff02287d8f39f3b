package httpclient

import (
	"net/http"
	"slices"
	"sync"
)

// RequestHook is called with every outgoing request before it is sent.
// Returning an error aborts the request; the error is returned to the caller.
type RequestHook func(req *http.Request) error

// ResponseHook observes every completed round trip. Exactly one of resp and err
// is non-nil. Hooks must not close or consume resp.Body.
type ResponseHook func(req *http.Request, resp *http.Response, err error)

type hookKind uint8

const (
	requestHook hookKind = iota + 1
	responseHook
)

// Handle identifies a registered hook. The zero Handle identifies nothing.
type Handle struct {
	kind hookKind
	id   uint64
}

// Valid reports whether h was returned by a successful registration.
func (h Handle) Valid() bool {
	return h.id != 0
}

type requestEntry struct {
	id   uint64
	hook RequestHook
}

type responseEntry struct {
	id   uint64
	hook ResponseHook
}

// hookSet is the registry shared by a Client and its transport.
type hookSet struct {
	mu       sync.RWMutex
	nextID   uint64
	request  []requestEntry
	response []responseEntry
}

func (s *hookSet) addRequest(h RequestHook) Handle {
	if h == nil {
		return Handle{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.request = append(s.request, requestEntry{id: s.nextID, hook: h})
	return Handle{kind: requestHook, id: s.nextID}
}

func (s *hookSet) addResponse(h ResponseHook) Handle {
	if h == nil {
		return Handle{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.response = append(s.response, responseEntry{id: s.nextID, hook: h})
	return Handle{kind: responseHook, id: s.nextID}
}

func (s *hookSet) remove(h Handle) bool {
	if !h.Valid() {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	switch h.kind {
	case requestHook:
		i := slices.IndexFunc(s.request, func(e requestEntry) bool { return e.id == h.id })
		if i < 0 {
			return false
		}
		s.request = slices.Delete(s.request, i, i+1)
		return true
	case responseHook:
		i := slices.IndexFunc(s.response, func(e responseEntry) bool { return e.id == h.id })
		if i < 0 {
			return false
		}
		s.response = slices.Delete(s.response, i, i+1)
		return true
	}
	return false
}

// snapshot copies the current hook lists so hooks run without holding the lock;
// a hook may itself register or eject hooks.
func (s *hookSet) snapshot() ([]RequestHook, []ResponseHook) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req := make([]RequestHook, len(s.request))
	for i, e := range s.request {
		req[i] = e.hook
	}
	resp := make([]ResponseHook, len(s.response))
	for i, e := range s.response {
		resp[i] = e.hook
	}
	return req, resp
}

func (s *hookSet) count() (int, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.request), len(s.response)
}
