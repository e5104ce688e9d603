// Package catalog は上流カタログプロバイダとの連携機能を提供する。
// API呼び出しクライアント、ページネーション、ダウンロードリンク解決を含む。
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/brunomdev/gamedex/internal/metrics"
	"github.com/brunomdev/gamedex/internal/model"
)

// Client は上流カタログAPIのクライアント。
// 全操作がPOST+JSONのライブ呼び出しで、キャッシュもリトライも行わない。
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	metrics    metrics.MetricsCollector
}

// NewClient はClientの新しいインスタンスを生成する。
// タイムアウトはhttpClient側で設定する。
func NewClient(httpClient *http.Client, baseURL string, logger *slog.Logger, collector metrics.MetricsCollector) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     logger,
		metrics:    collector,
	}
}

// 上流APIは操作によらずuserIdを要求する。認証はこちらで扱うため常に0。
type gameListRequest struct {
	UserID int `json:"userId"`
}

type categoryGamesRequest struct {
	UserID     int `json:"userId"`
	CategoryID int `json:"categoryId"`
}

type gameInfoRequest struct {
	UserID int `json:"userId"`
	GameID int `json:"gameId"`
}

type recommendRequest struct {
	UserID int    `json:"userId"`
	GameID int    `json:"gameId"`
	Title  string `json:"title"`
}

// ListCategories は全カテゴリを取得する。
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.post(ctx, "/category/list", "list_categories", gameListRequest{UserID: 0}, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// ListAllGames は全ゲームの一覧を取得する。
func (c *Client) ListAllGames(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := c.post(ctx, "/gamelist/get", "list_all_games", gameListRequest{UserID: 0}, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ListGamesByCategory は指定カテゴリのゲーム一覧を取得する。
func (c *Client) ListGamesByCategory(ctx context.Context, categoryID int) ([]model.Game, error) {
	var games []model.Game
	if err := c.post(ctx, "/gamelist/category", "list_games_by_category", categoryGamesRequest{UserID: 0, CategoryID: categoryID}, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// GetGameDetail は指定ゲームの詳細を取得する。
func (c *Client) GetGameDetail(ctx context.Context, gameID int) (*model.Game, error) {
	game := &model.Game{}
	if err := c.post(ctx, "/gameinfo/get", "get_game_detail", gameInfoRequest{UserID: 0, GameID: gameID}, game); err != nil {
		return nil, err
	}
	return game, nil
}

// GetRecommendations は指定ゲームのレコメンド一覧を取得する。
// 上流はIDとタイトルの両方を要求するため、まず詳細を取得してタイトルを
// 解決する2段階の複合操作になる。1段目が失敗したら2段目は実行しない。
func (c *Client) GetRecommendations(ctx context.Context, gameID int) ([]model.Game, error) {
	game, err := c.GetGameDetail(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve game title for recommendations: %w", err)
	}

	var games []model.Game
	if err := c.post(ctx, "/gameinfo/recommend", "get_recommendations", recommendRequest{UserID: 0, GameID: gameID, Title: game.Title}, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// post は上流APIにJSONをPOSTし、レスポンスをoutにデコードする。
func (c *Client) post(ctx context.Context, path, operation string, reqBody, out any) error {
	start := time.Now()
	err := c.doPost(ctx, path, reqBody, out)
	c.metrics.RecordUpstreamLatency(operation, time.Since(start))

	if err != nil {
		c.metrics.RecordUpstreamFailure(operation)
		c.logger.Error("upstream catalog call failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		return err
	}

	c.metrics.RecordUpstreamSuccess(operation)
	return nil
}

func (c *Client) doPost(ctx context.Context, path string, reqBody, out any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read upstream response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse upstream response: %w", err)
	}

	return nil
}
