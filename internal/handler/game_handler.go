package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brunomdev/gamedex/internal/middleware"
	"github.com/brunomdev/gamedex/internal/model"
)

// GameServiceInterface はゲームハンドラーが必要とするサービスインターフェース。
type GameServiceInterface interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListGames(ctx context.Context, page, limit int) (model.Page[model.GameSummary], error)
	ListGamesByCategory(ctx context.Context, categoryID, page, limit int) (model.Page[model.GameSummary], error)
	SearchGames(ctx context.Context, query string, page, limit int) (model.Page[model.GameSummary], error)
	GetGameDetail(ctx context.Context, gameID int, authenticated bool) (*model.GameDetail, error)
	GetRecommendations(ctx context.Context, gameID int) ([]model.GameSummary, error)
}

// GameHandler はカタログ閲覧のHTTPハンドラー。
type GameHandler struct {
	service GameServiceInterface
}

// NewGameHandler はGameHandlerを生成する。
func NewGameHandler(service GameServiceInterface) *GameHandler {
	return &GameHandler{service: service}
}

// apiErrorResponse は統一エラーフォーマットのレスポンス。
type apiErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Category string `json:"category"`
	Action   string `json:"action"`
}

// ListCategories はカテゴリ一覧を返す。
// GET /api/categories
func (h *GameHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// ListGames は全ゲームの指定ページを返す。
// GET /api/games?page&limit
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	page, limit := parsePageParams(r)

	result, err := h.service.ListGames(r.Context(), page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListGamesByCategory は指定カテゴリのゲームの指定ページを返す。
// GET /api/games/category/{id}?page&limit
func (h *GameHandler) ListGamesByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("id da categoria deve ser um número"))
		return
	}

	page, limit := parsePageParams(r)

	result, err := h.service.ListGamesByCategory(r.Context(), categoryID, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// SearchGames はタイトル検索結果の指定ページを返す。
// GET /api/search?q&page&limit
// qが空の場合は全ゲームと同じ結果になる。
func (h *GameHandler) SearchGames(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page, limit := parsePageParams(r)

	result, err := h.service.SearchGames(r.Context(), query, page, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetGameDetail はゲーム詳細を返す。
// GET /api/game/{id}
// ログイン済みの場合はpremiumリンクがdownload_urlに解決される。
func (h *GameHandler) GetGameDetail(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("id do jogo deve ser um número"))
		return
	}

	// OptionalSessionミドルウェアが注入したユーザーIDの有無で認証状態を判定
	_, sessionErr := middleware.UserIDFromContext(r.Context())
	authenticated := sessionErr == nil

	detail, err := h.service.GetGameDetail(r.Context(), gameID, authenticated)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// GetRecommendations は指定ゲームのレコメンド一覧を返す。
// GET /api/game/{id}/recommend
func (h *GameHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	gameID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError("id do jogo deve ser um número"))
		return
	}

	games, err := h.service.GetRecommendations(r.Context(), gameID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

// parsePageParams はクエリからpage/limitを読み取る。
// 欠落や不正値は0とし、正規化はページネーション側に任せる。
func parsePageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// writeJSON はJSONレスポンスを書き込む。
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse は統一エラーフォーマットでレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, statusCode int, apiErr *model.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(apiErrorResponse{
		Code:     apiErr.Code,
		Message:  apiErr.Message,
		Category: apiErr.Category,
		Action:   apiErr.Action,
	})
}

// handleServiceError はサービス層のエラーをHTTPレスポンスに変換する。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		statusCode := mapAPIErrorToHTTPStatus(apiErr)
		writeAPIErrorResponse(w, statusCode, apiErr)
		return
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	writeAPIErrorResponse(w, http.StatusInternalServerError, &model.APIError{
		Code:     "INTERNAL_ERROR",
		Message:  "Ocorreu um erro interno.",
		Category: "system",
		Action:   "Tente novamente em alguns instantes.",
	})
}

// mapAPIErrorToHTTPStatus はAPIErrorのコードをHTTPステータスに対応付ける。
func mapAPIErrorToHTTPStatus(apiErr *model.APIError) int {
	switch apiErr.Code {
	case model.ErrCodeUpstreamUnavailable:
		return http.StatusBadGateway
	case model.ErrCodeCommentTooShort, model.ErrCodeCommentRejected, model.ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case model.ErrCodeCommentNotFound:
		return http.StatusNotFound
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
