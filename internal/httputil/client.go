package httputil

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// Doer abstracts the single HTTP operation the loader needs.
// Use an *http.Client in production; MockDoer in tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MockDoer is a Doer returning canned responses, recording every request.
type MockDoer struct {
	mu        sync.Mutex
	Requests  []*http.Request
	responses []mockResponse
	idx       int
}

type mockResponse struct {
	status int
	body   string
	err    error
}

// NewMockDoer creates an empty MockDoer.
func NewMockDoer() *MockDoer {
	return &MockDoer{}
}

// AddResponse queues a response to be returned by a subsequent request.
func (m *MockDoer) AddResponse(status int, body string) *MockDoer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{status: status, body: body})
	return m
}

// AddError queues a transport error.
func (m *MockDoer) AddError(err error) *MockDoer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, mockResponse{err: err})
	return m
}

// Do returns the next queued response.
func (m *MockDoer) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, req)
	if m.idx >= len(m.responses) {
		return nil, fmt.Errorf("mock doer: no response queued for %s", req.URL)
	}
	resp := m.responses[m.idx]
	m.idx++

	if resp.err != nil {
		return nil, resp.err
	}
	return &http.Response{
		StatusCode: resp.status,
		Status:     http.StatusText(resp.status),
		Body:       io.NopCloser(strings.NewReader(resp.body)),
		Header:     make(http.Header),
		Request:    req,
	}, nil
}
