package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/brunomdev/gamedex/internal/metrics"
	"github.com/brunomdev/gamedex/internal/middleware"
)

// HealthChecker はヘルスチェックに必要なインターフェース。
// *sql.DBがそのまま満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	Metrics           metrics.MetricsCollector
	SessionFinder     middleware.SessionFinder
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	CSRFConfig        middleware.CSRFConfig

	// ヘルスチェック・メトリクス公開
	HealthChecker   HealthChecker
	MetricsGatherer prometheus.Gatherer

	// 認証
	AuthService AuthServiceInterface
	AuthConfig  AuthHandlerConfig

	// カタログ
	GameService GameServiceInterface

	// コメント
	CommentService CommentServiceInterface
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging →
//	（/api配下）CSRF → RateLimit(General) →
//	（ルートごと）OptionalSession / RequireSession → RateLimit(Comment)
//
// 認証ルート（/auth/*）、/health、/metricsはAPI用チェーンの外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	// 全ルートに効くミドルウェア
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics))

	authHandler := NewAuthHandler(deps.AuthService, deps.AuthConfig)
	gameHandler := NewGameHandler(deps.GameService)
	commentHandler := NewCommentHandler(deps.CommentService)

	optionalSession := middleware.NewOptionalSessionMiddleware(deps.SessionFinder)
	requireSession := middleware.NewRequireSessionMiddleware(deps.SessionFinder)

	// --- 運用ルート ---
	r.Get("/health", newHealthHandler(deps.HealthChecker))
	r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.MetricsGatherer))

	// --- 認証ルート（OAuthフロー） ---
	r.Route("/auth", func(r chi.Router) {
		r.Get("/google/login", authHandler.Login)
		r.Get("/google/callback", authHandler.Callback)
		r.Post("/logout", authHandler.Logout)
	})

	// --- APIルート ---
	// ミドルウェアスタック: CSRF → RateLimit(General)
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCSRFMiddleware(deps.CSRFConfig))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Method(http.MethodGet, "/csrf-token", middleware.NewCSRFTokenHandler(deps.CSRFConfig))

		// 認証状態でレスポンスが変わるルート
		r.With(optionalSession).Get("/me", authHandler.Me)

		// カタログ閲覧（匿名可）
		r.Get("/categories", gameHandler.ListCategories)
		r.Get("/games", gameHandler.ListGames)
		r.Get("/games/category/{id}", gameHandler.ListGamesByCategory)
		r.Get("/search", gameHandler.SearchGames)

		r.Route("/game/{id}", func(r chi.Router) {
			// 詳細はログイン状態でダウンロードリンクが変わる
			r.With(optionalSession).Get("/", gameHandler.GetGameDetail)
			r.Get("/recommend", gameHandler.GetRecommendations)

			r.Get("/comments", commentHandler.ListComments)
			// 投稿は認証必須 + 専用レート制限
			r.With(requireSession, deps.RateLimiter.CommentMiddleware()).
				Post("/comments", commentHandler.CreateComment)
		})

		// コメント削除（所有者チェックはサービス層）
		r.With(requireSession).Delete("/comments/{commentId}", commentHandler.DeleteComment)
	})

	return r
}

// newHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := checker.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("unhealthy"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}
}
