// ABOUTME: Fake newspulse backend for tests, serving the chatbot and dashboard endpoints
// ABOUTME: Records every request and replays canned bodies configured per test

package backendtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Body   string
}

// ChatFunc answers a chatbot query with a raw response body.
type ChatFunc func(query, url string) (status int, body string)

// Server is an httptest server with the backend's routes.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	requests  []Request
	chat      ChatFunc
	dashboard string
	gate      chan struct{}
}

// New starts a Server and closes it when the test ends. Until configured,
// /chatbot echoes "echo: <query>" and /dashboard-data returns {}.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		chat: func(query, _ string) (int, string) {
			b, _ := json.Marshal(map[string]string{"response": "echo: " + query})
			return http.StatusOK, string(b)
		},
		dashboard: `{}`,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Post("/chatbot", s.handleChat)
	r.Get("/dashboard-data", s.handleDashboard)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Server.Close)
	t.Cleanup(s.Release)
	return s
}

// SetChat replaces the chatbot responder.
func (s *Server) SetChat(fn ChatFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = fn
}

// SetDashboard sets the raw body of /dashboard-data.
func (s *Server) SetDashboard(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dashboard = body
}

// Hold makes /chatbot block until Release is called.
func (s *Server) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
}

// Release unblocks held chatbot requests.
func (s *Server) Release() {
	s.mu.Lock()
	gate := s.gate
	s.gate = nil
	s.mu.Unlock()
	if gate != nil {
		close(gate)
	}
}

// Requests returns the recorded calls in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// ChatRequests returns how many /chatbot calls were made.
func (s *Server) ChatRequests() int {
	n := 0
	for _, r := range s.Requests() {
		if r.Path == "/chatbot" {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var q struct {
		Query string `json:"query"`
		URL   string `json:"url"`
	}
	_ = json.NewDecoder(r.Body).Decode(&q)

	s.mu.Lock()
	fn, gate := s.chat, s.gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	status, body := fn(q.Query, q.URL)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body := s.dashboard
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, body)
}
