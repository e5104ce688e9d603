package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func newScoreServer(t *testing.T, score float64) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("HTTPメソッド = %s, want POST", r.Method)
		}
		if r.URL.Query().Get("key") == "" {
			t.Error("keyクエリパラメータが設定されているべき")
		}

		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("リクエストボディのデコードに失敗: %v", err)
		}
		langs, _ := req["languages"].([]any)
		if len(langs) != 2 || langs[0] != "pt" || langs[1] != "en" {
			t.Errorf("languages = %v, want [pt en]", langs)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"attributeScores": map[string]any{
				"TOXICITY": map[string]any{
					"summaryScore": map[string]any{"value": score},
				},
			},
		})
	}))
}

func TestClient_Screen_AcceptsBelowThreshold(t *testing.T) {
	server := newScoreServer(t, 0.3)
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), "test-key", newTestLogger(&buf))
	c.endpoint = server.URL

	decision, err := c.Screen(context.Background(), "que jogo legal")
	if err != nil {
		t.Fatalf("Screen がエラーを返した: %v", err)
	}
	if decision != DecisionAccepted {
		t.Errorf("decision = %s, want %s", decision, DecisionAccepted)
	}
}

func TestClient_Screen_RejectsAboveThreshold(t *testing.T) {
	server := newScoreServer(t, 0.95)
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), "test-key", newTestLogger(&buf))
	c.endpoint = server.URL

	decision, err := c.Screen(context.Background(), "texto ofensivo")
	if err != nil {
		t.Fatalf("Screen がエラーを返した: %v", err)
	}
	if decision != DecisionRejected {
		t.Errorf("decision = %s, want %s", decision, DecisionRejected)
	}
}

func TestClient_Screen_ThresholdIsExclusive(t *testing.T) {
	// ちょうど0.7は拒否しない（> 0.7 のみ拒否）
	server := newScoreServer(t, 0.7)
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), "test-key", newTestLogger(&buf))
	c.endpoint = server.URL

	decision, err := c.Screen(context.Background(), "no limite")
	if err != nil {
		t.Fatalf("Screen がエラーを返した: %v", err)
	}
	if decision != DecisionAccepted {
		t.Errorf("スコア0.7ちょうどは受理されるべき: decision = %s", decision)
	}
}

func TestClient_Screen_MissingKeyReturnsErrNotConfigured(t *testing.T) {
	var buf bytes.Buffer
	c := NewClient(http.DefaultClient, "", newTestLogger(&buf))

	_, err := c.Screen(context.Background(), "qualquer texto")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestClient_Screen_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), "test-key", newTestLogger(&buf))
	c.endpoint = server.URL

	if _, err := c.Screen(context.Background(), "texto"); err == nil {
		t.Error("非200レスポンスはエラーになるべき")
	}
}

func TestClient_Screen_MissingScoreIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"attributeScores":{}}`))
	}))
	defer server.Close()

	var buf bytes.Buffer
	c := NewClient(server.Client(), "test-key", newTestLogger(&buf))
	c.endpoint = server.URL

	if _, err := c.Screen(context.Background(), "texto"); err == nil {
		t.Error("TOXICITYスコア欠落はエラーになるべき")
	}
}

func TestClient_Screen_UnreachableServerIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	var buf bytes.Buffer
	c := NewClient(http.DefaultClient, "test-key", newTestLogger(&buf))
	c.endpoint = server.URL

	if _, err := c.Screen(context.Background(), "texto"); err == nil {
		t.Error("到達不能なサーバーはエラーになるべき")
	}
}
