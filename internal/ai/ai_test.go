package ai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chatServer(t *testing.T, status int, content string, gotPrompt *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}

		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if gotPrompt != nil && len(req.Messages) > 0 {
			*gotPrompt = req.Messages[0].Content
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": time.Now().Unix(),
			"model":   req.Model,
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDraft_MissingKey(t *testing.T) {
	d := NewOpenAIDrafter(Config{}, silentLogger())
	assert.False(t, d.Enabled())
	assert.Equal(t, MsgMissingKey, d.Draft(context.Background(), "Khai giảng", KindNews))
}

func TestDraft_Success(t *testing.T) {
	var prompt string
	srv := chatServer(t, http.StatusOK, "# Lễ khai giảng\n\nNội dung.", &prompt)
	d := NewOpenAIDrafter(Config{APIKey: "test-key", BaseURL: srv.URL + "/"}, silentLogger())

	got := d.Draft(context.Background(), "Lễ khai giảng năm học mới", KindNews)
	assert.Equal(t, "# Lễ khai giảng\n\nNội dung.", got)
	assert.Contains(t, prompt, "Lễ khai giảng năm học mới")
	assert.Contains(t, prompt, "200 từ")
}

func TestDraft_Failure(t *testing.T) {
	srv := chatServer(t, http.StatusBadRequest, "", nil)
	d := NewOpenAIDrafter(Config{APIKey: "test-key", BaseURL: srv.URL + "/"}, silentLogger())
	assert.Equal(t, MsgFailed, d.Draft(context.Background(), "Họp phụ huynh", KindAnnouncement))
}

func TestDraft_EmptyAnswer(t *testing.T) {
	srv := chatServer(t, http.StatusOK, "   ", nil)
	d := NewOpenAIDrafter(Config{APIKey: "test-key", BaseURL: srv.URL + "/"}, silentLogger())
	assert.Equal(t, MsgEmpty, d.Draft(context.Background(), "Họp phụ huynh", KindNews))
}

func TestDraft_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	d := NewOpenAIDrafter(Config{APIKey: "test-key", BaseURL: url + "/", Timeout: time.Second}, silentLogger())
	assert.Equal(t, MsgFailed, d.Draft(context.Background(), "x", KindNews))
}

func TestPrompt(t *testing.T) {
	news := Prompt("  Hội khỏe Phù Đổng  ", KindNews)
	require.Contains(t, news, `"Hội khỏe Phù Đổng"`)
	assert.Contains(t, news, "bài báo ngắn")

	ann := Prompt("Nghỉ lễ 2/9", KindAnnouncement)
	assert.Contains(t, ann, "thông báo chính thức")
	assert.Contains(t, ann, "150 từ")
}

func TestParseKind(t *testing.T) {
	assert.Equal(t, KindAnnouncement, ParseKind("announcement"))
	assert.Equal(t, KindNews, ParseKind("news"))
	assert.Equal(t, KindNews, ParseKind(""))
	assert.Equal(t, KindNews, ParseKind("poem"))
}
