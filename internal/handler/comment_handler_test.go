package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/brunomdev/gamedex/internal/middleware"
	"github.com/brunomdev/gamedex/internal/model"
)

type mockCommentService struct {
	listFn   func(ctx context.Context, gameID int) ([]*model.Comment, error)
	createFn func(ctx context.Context, gameID int, userID, text string) (*model.Comment, error)
	deleteFn func(ctx context.Context, commentID, userID string) error
}

func (m *mockCommentService) List(ctx context.Context, gameID int) ([]*model.Comment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, gameID)
	}
	return []*model.Comment{}, nil
}

func (m *mockCommentService) Create(ctx context.Context, gameID int, userID, text string) (*model.Comment, error) {
	if m.createFn != nil {
		return m.createFn(ctx, gameID, userID, text)
	}
	return &model.Comment{ID: "c1", GameID: gameID, UserID: userID, Text: text}, nil
}

func (m *mockCommentService) Delete(ctx context.Context, commentID, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, commentID, userID)
	}
	return nil
}

func newCommentRouter(h *CommentHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Get("/api/game/{id}/comments", h.ListComments)
	r.Post("/api/game/{id}/comments", h.CreateComment)
	r.Delete("/api/comments/{commentId}", h.DeleteComment)
	return r
}

func withUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.ContextWithUserID(req.Context(), userID))
}

func TestCommentHandler_ListComments_Success(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{
		listFn: func(ctx context.Context, gameID int) ([]*model.Comment, error) {
			if gameID != 42 {
				t.Errorf("gameID = %d, want 42", gameID)
			}
			return []*model.Comment{{ID: "c1", GameID: 42, Text: "bom jogo"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/game/42/comments", nil)
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var comments []*model.Comment
	if err := json.NewDecoder(rec.Body).Decode(&comments); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if len(comments) != 1 || comments[0].ID != "c1" {
		t.Errorf("comments = %+v, want 1件 ID=c1", comments)
	}
}

func TestCommentHandler_CreateComment_Success(t *testing.T) {
	var gotUserID, gotText string
	h := NewCommentHandler(&mockCommentService{
		createFn: func(ctx context.Context, gameID int, userID, text string) (*model.Comment, error) {
			gotUserID, gotText = userID, text
			return &model.Comment{ID: "c1", GameID: gameID, UserID: userID, Text: text}, nil
		},
	})

	body := strings.NewReader(`{"text":"jogo excelente"}`)
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/game/7/comments", body), "user-1")
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if gotUserID != "user-1" {
		t.Errorf("userID = %s, want user-1", gotUserID)
	}
	if gotText != "jogo excelente" {
		t.Errorf("text = %q, want %q", gotText, "jogo excelente")
	}
}

func TestCommentHandler_CreateComment_WithoutSessionIs401(t *testing.T) {
	created := false
	h := NewCommentHandler(&mockCommentService{
		createFn: func(ctx context.Context, gameID int, userID, text string) (*model.Comment, error) {
			created = true
			return nil, nil
		},
	})

	body := strings.NewReader(`{"text":"jogo excelente"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/game/7/comments", body)
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if created {
		t.Error("未認証リクエストでサービスが呼ばれてはならない")
	}
}

func TestCommentHandler_CreateComment_InvalidBodyIs400(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{})

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/game/7/comments", strings.NewReader("not json")), "user-1")
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCommentHandler_CreateComment_TooShortIs400WithMessage(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{
		createFn: func(ctx context.Context, gameID int, userID, text string) (*model.Comment, error) {
			return nil, model.NewCommentTooShortError()
		},
	})

	body := strings.NewReader(`{"text":"ab"}`)
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/game/7/comments", body), "user-1")
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp apiErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("エラーレスポンスのデコードに失敗: %v", err)
	}
	if resp.Message != "Comentário muito curto." {
		t.Errorf("Message = %q, want %q", resp.Message, "Comentário muito curto.")
	}
}

func TestCommentHandler_CreateComment_RejectedIs400(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{
		createFn: func(ctx context.Context, gameID int, userID, text string) (*model.Comment, error) {
			return nil, model.NewCommentRejectedError()
		},
	})

	body := strings.NewReader(`{"text":"texto ofensivo"}`)
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/game/7/comments", body), "user-1")
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}

	var resp apiErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("エラーレスポンスのデコードに失敗: %v", err)
	}
	if resp.Code != model.ErrCodeCommentRejected {
		t.Errorf("Code = %s, want %s", resp.Code, model.ErrCodeCommentRejected)
	}
}

func TestCommentHandler_DeleteComment_OwnerSucceeds(t *testing.T) {
	var gotCommentID, gotUserID string
	h := NewCommentHandler(&mockCommentService{
		deleteFn: func(ctx context.Context, commentID, userID string) error {
			gotCommentID, gotUserID = commentID, userID
			return nil
		},
	})

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/comments/c1", nil), "user-1")
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if gotCommentID != "c1" || gotUserID != "user-1" {
		t.Errorf("commentID=%s userID=%s, want c1/user-1", gotCommentID, gotUserID)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("レスポンスのデコードに失敗: %v", err)
	}
	if resp["status"] != "deleted" {
		t.Errorf("status = %q, want deleted", resp["status"])
	}
}

func TestCommentHandler_DeleteComment_NonOwnerIs403(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{
		deleteFn: func(ctx context.Context, commentID, userID string) error {
			return model.NewForbiddenError()
		},
	})

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/comments/c1", nil), "other-user")
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestCommentHandler_DeleteComment_NotFoundIs404(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{
		deleteFn: func(ctx context.Context, commentID, userID string) error {
			return model.NewCommentNotFoundError(commentID)
		},
	})

	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/comments/missing", nil), "user-1")
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestCommentHandler_DeleteComment_WithoutSessionIs401(t *testing.T) {
	h := NewCommentHandler(&mockCommentService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/comments/c1", nil)
	rec := httptest.NewRecorder()
	newCommentRouter(h).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
