// ABOUTME: Tests for the chatbot HTTP client against the fake backend
// ABOUTME: Covers request shape, missing responses, non-JSON bodies, and transport failures

package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newspulse/newspulse-client/internal/backendtest"
)

func TestClient_Ask(t *testing.T) {
	srv := backendtest.New(t)
	srv.SetChat(func(query, url string) (int, string) {
		return http.StatusOK, `{"response":"hi there"}`
	})

	reply, err := NewClient(srv.URL+"/", nil).Ask(context.Background(), Query{Query: "hello", URL: testPageURL})
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply.Response)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/chatbot", reqs[0].Path)
	assert.JSONEq(t, `{"query":"hello","url":"http://127.0.0.1:5000/"}`, reqs[0].Body)
}

func TestClient_AskBodies(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    string
		wantErr bool
	}{
		{"missing response", http.StatusOK, `{}`, "", false},
		{"null response", http.StatusOK, `{"response":null}`, "", false},
		{"error status with json", http.StatusInternalServerError, `{"response":"degraded"}`, "degraded", false},
		{"not json", http.StatusOK, `<html>oops</html>`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := backendtest.New(t)
			srv.SetChat(func(string, string) (int, string) { return tt.status, tt.body })

			reply, err := NewClient(srv.URL, nil).Ask(context.Background(), Query{Query: "q"})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidResponse)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Response)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL, nil).Ask(context.Background(), Query{Query: "q"})
	assert.Error(t, err)
}
