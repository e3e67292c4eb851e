package rewriter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pictora/pictora/internal/errs"
	"github.com/pictora/pictora/internal/logger"
)

func newChatServer(t *testing.T, handler func(w http.ResponseWriter, req chatRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		handler(w, req)
	}))
}

func writeCompletion(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := chatResponse{}
	resp.Choices = append(resp.Choices, struct {
		Message chatMessage `json:"message"`
	}{Message: chatMessage{Role: "assistant", Content: content}})
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func newLLMRewriter(t *testing.T, endpoint string, retries int) Rewriter {
	t.Helper()
	rw, err := NewRewriter(&Config{
		Enabled:      true,
		Endpoint:     endpoint,
		Model:        "gpt-4o-mini",
		HTTPTimeoutS: 5,
		MaxRetries:   retries,
	}, logger.NewNop())
	require.NoError(t, err)
	return rw
}

func TestPassthrough(t *testing.T) {
	p := Passthrough{}

	out, err := p.Rewrite(context.Background(), "hey, show me dogs on a beach")
	require.NoError(t, err)
	assert.Equal(t, "hey, show me dogs on a beach", out)

	_, err = p.Rewrite(context.Background(), "   ")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestNewRewriter_DisabledUsesPassthrough(t *testing.T) {
	rw, err := NewRewriter(&Config{Enabled: false}, logger.NewNop())
	require.NoError(t, err)
	assert.IsType(t, Passthrough{}, rw)
}

func TestRewrite(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, req chatRequest) {
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.Zero(t, req.Temperature)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "user", req.Messages[1].Role)
		writeCompletion(t, w, "  dogs running on a beach\n")
	})
	defer srv.Close()

	rw := newLLMRewriter(t, srv.URL, 0)

	out, err := rw.Rewrite(context.Background(), "hey, can you find dogs running on a beach?")
	require.NoError(t, err)
	assert.Equal(t, "dogs running on a beach", out)
}

func TestRewrite_EmptyQuery(t *testing.T) {
	rw := newLLMRewriter(t, "http://127.0.0.1:1", 0)

	_, err := rw.Rewrite(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, errs.KindValidation, errs.KindOf(err))
}

func TestRewrite_RetriesTransientFailure(t *testing.T) {
	var calls atomic.Int32
	srv := newChatServer(t, func(w http.ResponseWriter, _ chatRequest) {
		if calls.Add(1) == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		writeCompletion(t, w, "red sports car")
	})
	defer srv.Close()

	rw := newLLMRewriter(t, srv.URL, 2)

	out, err := rw.Rewrite(context.Background(), "I want a red sports car picture")
	require.NoError(t, err)
	assert.Equal(t, "red sports car", out)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRewrite_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := newChatServer(t, func(w http.ResponseWriter, _ chatRequest) {
		calls.Add(1)
		http.Error(w, "unknown model", http.StatusBadRequest)
	})
	defer srv.Close()

	rw := newLLMRewriter(t, srv.URL, 3)

	_, err := rw.Rewrite(context.Background(), "cats")
	require.Error(t, err)
	assert.Equal(t, errs.KindTranslation, errs.KindOf(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestRewrite_ExhaustedRetries(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, _ chatRequest) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})
	defer srv.Close()

	rw := newLLMRewriter(t, srv.URL, 1)

	_, err := rw.Rewrite(context.Background(), "cats")
	require.Error(t, err)
	assert.Equal(t, errs.KindTranslation, errs.KindOf(err))
}

func TestRewrite_EmptyCompletion(t *testing.T) {
	srv := newChatServer(t, func(w http.ResponseWriter, _ chatRequest) {
		writeCompletion(t, w, "   ")
	})
	defer srv.Close()

	rw := newLLMRewriter(t, srv.URL, 0)

	_, err := rw.Rewrite(context.Background(), "cats")
	require.Error(t, err)
	assert.Equal(t, errs.KindTranslation, errs.KindOf(err))
}
