package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestRateLimiter(generalBurst, commentBurst int) *RateLimiter {
	return NewRateLimiter(RateLimiterConfig{
		GeneralRate:     1,
		GeneralBurst:    generalBurst,
		CommentRate:     1,
		CommentBurst:    commentBurst,
		CleanupInterval: time.Minute,
	})
}

func TestGeneralMiddleware_AllowsRequestsWithinBurst(t *testing.T) {
	rl := newTestRateLimiter(5, 10)
	defer rl.Stop()

	callCount := 0
	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		req = req.WithContext(ContextWithUserID(req.Context(), "user-1"))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	if callCount != 5 {
		t.Errorf("handler call count = %d, want 5", callCount)
	}
}

func TestGeneralMiddleware_Returns429WhenBurstExceeded(t *testing.T) {
	rl := newTestRateLimiter(2, 10)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		req = req.WithContext(ContextWithUserID(req.Context(), "user-burst"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send(); rec.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	rec := send()
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Retry-Afterヘッダーが設定されるべき")
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if body["code"] != "RATE_LIMIT_EXCEEDED" {
		t.Errorf("code = %s, want RATE_LIMIT_EXCEEDED", body["code"])
	}
}

func TestGeneralMiddleware_AnonymousRequestsAreKeyedByIP(t *testing.T) {
	rl := newTestRateLimiter(1, 10)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		req.RemoteAddr = remoteAddr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	// 同一IPの2回目は制限に引っかかる
	if rec := send("10.0.0.1:1234"); rec.Code != http.StatusOK {
		t.Errorf("最初のリクエストは通るべき: %d", rec.Code)
	}
	if rec := send("10.0.0.1:5678"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("同一IPの2回目は429であるべき: %d", rec.Code)
	}

	// 別IPは独立して制限される
	if rec := send("10.0.0.2:1234"); rec.Code != http.StatusOK {
		t.Errorf("別IPのリクエストは通るべき: %d", rec.Code)
	}
}

func TestGeneralMiddleware_UsersAreIsolated(t *testing.T) {
	rl := newTestRateLimiter(1, 10)
	defer rl.Stop()

	handler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
		req = req.WithContext(ContextWithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	if rec := send("user-a"); rec.Code != http.StatusOK {
		t.Errorf("user-aの最初のリクエストは通るべき: %d", rec.Code)
	}
	if rec := send("user-a"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("user-aの2回目は429であるべき: %d", rec.Code)
	}
	if rec := send("user-b"); rec.Code != http.StatusOK {
		t.Errorf("user-bはuser-aの制限の影響を受けないべき: %d", rec.Code)
	}
}

func TestCommentMiddleware_RequiresUserID(t *testing.T) {
	rl := newTestRateLimiter(10, 10)
	defer rl.Stop()

	handler := rl.CommentMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("ユーザーIDなしでハンドラーが呼ばれてはならない")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/game/1/comments", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestCommentMiddleware_IsIndependentFromGeneralLimit(t *testing.T) {
	// コメント投稿の制限はAPI全般の制限とは別のバケットを使う
	rl := newTestRateLimiter(1, 3)
	defer rl.Stop()

	generalHandler := rl.GeneralMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	commentHandler := rl.CommentMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// API全般のバーストを使い切る
	req := httptest.NewRequest(http.MethodGet, "/api/games", nil)
	req = req.WithContext(ContextWithUserID(req.Context(), "user-1"))
	generalHandler.ServeHTTP(httptest.NewRecorder(), req)

	// コメント投稿はまだ通る
	req = httptest.NewRequest(http.MethodPost, "/api/game/1/comments", nil)
	req = req.WithContext(ContextWithUserID(req.Context(), "user-1"))
	rec := httptest.NewRecorder()
	commentHandler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("コメント投稿の制限はAPI全般と独立であるべき: %d", rec.Code)
	}
}

func TestCommentMiddleware_Returns429WhenBurstExceeded(t *testing.T) {
	rl := newTestRateLimiter(100, 2)
	defer rl.Stop()

	handler := rl.CommentMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/game/1/comments", nil)
		req = req.WithContext(ContextWithUserID(req.Context(), "user-spam"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 2; i++ {
		if rec := send(); rec.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want 200", i, rec.Code)
		}
	}

	if rec := send(); rec.Code != http.StatusTooManyRequests {
		t.Errorf("バースト超過後は429であるべき: %d", rec.Code)
	}
}

func TestRateLimiter_CleanupRemovesStaleEntries(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:     1,
		GeneralBurst:    1,
		CommentRate:     1,
		CommentBurst:    1,
		CleanupInterval: 10 * time.Millisecond,
	})
	defer rl.Stop()

	rl.getOrCreateGeneralLimiter("user-stale")

	if rl.GeneralLimiterCount() != 1 {
		t.Fatalf("limiter count = %d, want 1", rl.GeneralLimiterCount())
	}

	// lastAccessを過去に巻き戻してクリーンアップ対象にする
	rl.generalMu.Lock()
	rl.generalLimiters["user-stale"].lastAccess = time.Now().Add(-time.Hour)
	rl.generalMu.Unlock()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if rl.GeneralLimiterCount() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}

	t.Error("期限切れエントリがクリーンアップされるべき")
}
