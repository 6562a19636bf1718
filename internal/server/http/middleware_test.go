package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveHTTPWithHeader(s *Server, key, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	req.Header.Set(key, value)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func TestCorrelationIDMiddleware(t *testing.T) {
	srv := newDefaultTestServer()

	t.Run("echoes a client-supplied id", func(t *testing.T) {
		rr := serveHTTPWithHeader(srv, "X-Correlation-ID", "abc-123")
		assert.Equal(t, "abc-123", rr.Header().Get("X-Correlation-ID"))
	})

	t.Run("mints an id when none is supplied", func(t *testing.T) {
		rr := serveHTTP(srv, http.MethodGet, "/api/topics", "")
		assert.NotEmpty(t, rr.Header().Get("X-Correlation-ID"))
	})
}

func TestJSONContentType(t *testing.T) {
	srv := newDefaultTestServer()
	rr := serveHTTP(srv, http.MethodGet, "/api/topics", "")
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestRateLimitMiddleware(t *testing.T) {
	articleRepo := &mockArticleRepo{}
	srv := newTestServer(articleRepo, &mockCommentRepo{}, &mockTopicRepo{}, &mockUserRepo{})
	srv.limiter = newClientLimiter(1, 2)
	srv.router = srv.buildRouter()

	// The burst of two passes, the third request in the same instant is cut off.
	first := serveHTTP(srv, http.MethodGet, "/api/topics", "")
	second := serveHTTP(srv, http.MethodGet, "/api/topics", "")
	third := serveHTTP(srv, http.MethodGet, "/api/topics", "")

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.JSONEq(t, `{"msg":"Too Many Requests"}`, third.Body.String())
}

func TestClientLimiter_IsolatesClients(t *testing.T) {
	limiter := newClientLimiter(1, 1)

	assert.True(t, limiter.allow("10.0.0.1"))
	assert.False(t, limiter.allow("10.0.0.1"))
	assert.True(t, limiter.allow("10.0.0.2"))
}
