// Package sumsubtest provides an in-process fake of the verification
// provider for tests. Every request is checked against the provider's
// signing scheme before it reaches a route handler.
package sumsubtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/MKhiriev/go-sumsub-client/internal/utils"
	"github.com/MKhiriev/go-sumsub-client/models"
	"github.com/go-chi/chi/v5"
)

// Default credentials of a fake server.
const (
	AppToken  = "test-app-token"
	SecretKey = "test-secret-key"
)

// RecordedRequest is a request received by the fake server.
type RecordedRequest struct {
	Method string

	// RequestURI is the raw request target, exactly as sent.
	RequestURI string

	Header http.Header
	Body   []byte

	// Signature is the value the server expected in X-App-Access-Sig.
	Signature      string
	SignatureValid bool
}

// Server is a fake provider backed by httptest.Server and a chi router.
type Server struct {
	*httptest.Server

	appToken  string
	secretKey string
	router    chi.Router

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewServer starts a fake provider that accepts [AppToken] and
// [SecretKey]. It is closed when the test finishes.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{
		appToken:  AppToken,
		secretKey: SecretKey,
		router:    chi.NewRouter(),
	}
	s.router.Use(s.verifySignature)
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusNotFound, "route not registered: "+r.Method+" "+r.URL.Path)
	})

	s.Server = httptest.NewServer(s.router)
	t.Cleanup(s.Close)

	return s
}

// Credentials returns credentials pointing at the fake server.
func (s *Server) Credentials() models.Credentials {
	return models.Credentials{
		AppToken:  s.appToken,
		SecretKey: s.secretKey,
		BaseURL:   s.URL,
	}
}

// Handle registers h for method and a chi route pattern.
func (s *Server) Handle(method, pattern string, h http.HandlerFunc) {
	s.router.MethodFunc(method, pattern, h)
}

// Requests returns a copy of the requests received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or false if there is none.
func (s *Server) LastRequest() (RecordedRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return RecordedRequest{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "read body: "+err.Error())
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		ts := r.Header.Get("X-App-Access-Ts")
		expected := utils.HashString(ts+r.Method+r.RequestURI+string(body), s.secretKey)

		rec := RecordedRequest{
			Method:         r.Method,
			RequestURI:     r.RequestURI,
			Header:         r.Header.Clone(),
			Body:           body,
			Signature:      expected,
			SignatureValid: r.Header.Get("X-App-Access-Sig") == expected,
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		if _, err = strconv.ParseInt(ts, 10, 64); err != nil {
			WriteError(w, http.StatusUnauthorized, "invalid X-App-Access-Ts")
			return
		}
		if r.Header.Get("X-App-Token") != s.appToken {
			WriteError(w, http.StatusUnauthorized, "invalid X-App-Token")
			return
		}
		if !rec.SignatureValid {
			WriteError(w, http.StatusUnauthorized, "Request signature mismatch")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WriteJSON serializes data to JSON and writes it with statusCode.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(jsonData)
}

// WriteError writes the provider's error envelope.
func WriteError(w http.ResponseWriter, statusCode int, description string) {
	WriteJSON(w, statusCode, models.APIErrorBody{
		Description:   description,
		Code:          statusCode,
		CorrelationID: fmt.Sprintf("test-%d", statusCode),
	})
}
