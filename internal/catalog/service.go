package catalog

import (
	"context"
	"log/slog"

	"github.com/brunomdev/gamedex/internal/model"
)

// CatalogClient は上流カタログAPIクライアントのインターフェース。
// テスタビリティのためClientを抽象化する。
type CatalogClient interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListAllGames(ctx context.Context) ([]model.Game, error)
	ListGamesByCategory(ctx context.Context, categoryID int) ([]model.Game, error)
	GetGameDetail(ctx context.Context, gameID int) (*model.Game, error)
	GetRecommendations(ctx context.Context, gameID int) ([]model.Game, error)
}

// Service はカタログ閲覧のサービス層。
// 上流取得 → フィルタ → ページネーション → リンク解決のフローを統括する。
// 上流の失敗はすべてUPSTREAM_UNAVAILABLEのAPIErrorに変換する。
type Service struct {
	client CatalogClient
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(client CatalogClient) *Service {
	return &Service{client: client}
}

// ListCategories は全カテゴリを返す。
func (s *Service) ListCategories(ctx context.Context) ([]model.Category, error) {
	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		slog.Error("failed to list categories", slog.String("error", err.Error()))
		return nil, model.NewUpstreamUnavailableError()
	}
	return categories, nil
}

// ListGames は全ゲームの指定ページを返す。
func (s *Service) ListGames(ctx context.Context, page, limit int) (model.Page[model.GameSummary], error) {
	games, err := s.client.ListAllGames(ctx)
	if err != nil {
		slog.Error("failed to list games", slog.String("error", err.Error()))
		return model.Page[model.GameSummary]{}, model.NewUpstreamUnavailableError()
	}
	return Paginate(toSummaries(games), page, limit), nil
}

// ListGamesByCategory は指定カテゴリのゲームの指定ページを返す。
func (s *Service) ListGamesByCategory(ctx context.Context, categoryID, page, limit int) (model.Page[model.GameSummary], error) {
	games, err := s.client.ListGamesByCategory(ctx, categoryID)
	if err != nil {
		slog.Error("failed to list games by category",
			slog.Int("category_id", categoryID),
			slog.String("error", err.Error()),
		)
		return model.Page[model.GameSummary]{}, model.NewUpstreamUnavailableError()
	}
	return Paginate(toSummaries(games), page, limit), nil
}

// SearchGames はタイトル部分一致で絞り込んだ指定ページを返す。
// queryが空の場合は全ゲームと同じ結果になる。
func (s *Service) SearchGames(ctx context.Context, query string, page, limit int) (model.Page[model.GameSummary], error) {
	games, err := s.client.ListAllGames(ctx)
	if err != nil {
		slog.Error("failed to search games",
			slog.String("query", query),
			slog.String("error", err.Error()),
		)
		return model.Page[model.GameSummary]{}, model.NewUpstreamUnavailableError()
	}
	return Paginate(toSummaries(FilterByTitle(games, query)), page, limit), nil
}

// GetGameDetail は指定ゲームの詳細をダウンロードリンク解決済みで返す。
// authenticatedがtrueの場合はpremiumリンクがdownload_urlに入る。
func (s *Service) GetGameDetail(ctx context.Context, gameID int, authenticated bool) (*model.GameDetail, error) {
	game, err := s.client.GetGameDetail(ctx, gameID)
	if err != nil {
		slog.Error("failed to get game detail",
			slog.Int("game_id", gameID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewUpstreamUnavailableError()
	}
	return ResolveDownload(game, authenticated), nil
}

// GetRecommendations は指定ゲームのレコメンド一覧を返す。
func (s *Service) GetRecommendations(ctx context.Context, gameID int) ([]model.GameSummary, error) {
	games, err := s.client.GetRecommendations(ctx, gameID)
	if err != nil {
		slog.Error("failed to get recommendations",
			slog.Int("game_id", gameID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewUpstreamUnavailableError()
	}
	return toSummaries(games), nil
}

// toSummaries はダウンロードリンクを含まない一覧用表現に変換する。
func toSummaries(games []model.Game) []model.GameSummary {
	summaries := make([]model.GameSummary, 0, len(games))
	for _, game := range games {
		summaries = append(summaries, model.GameSummary{
			ID:       game.ID,
			Title:    game.Title,
			Cover:    game.Cover,
			Size:     game.Size,
			Year:     game.Year,
			Language: game.Language,
			Views:    game.Views,
			Rate:     game.Rate,
		})
	}
	return summaries
}

// compile-time interface check
var _ CatalogClient = (*Client)(nil)
