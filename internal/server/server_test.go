package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/haguru/localauth/pkg/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRoute(t *testing.T) {
	s := NewServer("localhost", "0", zerolog.NewNopLogger())

	ok := func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusTeapot) }

	tests := []struct {
		name    string
		route   string
		handler func(w http.ResponseWriter, r *http.Request)
		wantErr bool
	}{
		{name: "valid", route: "GET /ping", handler: ok},
		{name: "empty route", route: "", handler: ok, wantErr: true},
		{name: "nil handler", route: "/nil", handler: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddRoute(tt.route, tt.handler)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/ping", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUse_Order(t *testing.T) {
	s := NewServer("localhost", "0", zerolog.NewNopLogger())
	require.NoError(t, s.AddRoute("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("handler"))
	}))

	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(name + ">"))
				next.ServeHTTP(w, r)
			})
		}
	}
	s.Use(tag("outer"))
	s.Use(tag("inner"))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "outer>inner>handler"))
}
