// Package comment はゲームごとのコメントのドメインロジックを提供する。
// 投稿時のバリデーションと毒性スクリーニング、所有者のみの削除を統括する。
package comment

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brunomdev/gamedex/internal/metrics"
	"github.com/brunomdev/gamedex/internal/model"
	"github.com/brunomdev/gamedex/internal/moderation"
	"github.com/brunomdev/gamedex/internal/repository"
	"github.com/brunomdev/gamedex/internal/security"
)

// minCommentLength はトリム後のコメント本文の最小文字数。
const minCommentLength = 3

// Screener は毒性スクリーニングのインターフェース。
// テスタビリティのためmoderation.Clientを抽象化する。
type Screener interface {
	Screen(ctx context.Context, text string) (moderation.Decision, error)
}

// Service はコメントのサービス層。
// フロー: バリデーション → スクリーニング → サニタイズ → 永続化。
// スクリーニングはフェイルオープン: プロバイダの障害やキー未設定で
// 投稿がブロックされることはない。
type Service struct {
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	screener    Screener
	sanitizer   security.CommentSanitizerService
	metrics     metrics.MetricsCollector
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	screener Screener,
	sanitizer security.CommentSanitizerService,
	collector metrics.MetricsCollector,
) *Service {
	return &Service{
		commentRepo: commentRepo,
		userRepo:    userRepo,
		screener:    screener,
		sanitizer:   sanitizer,
		metrics:     collector,
	}
}

// List は指定ゲームの承認済みコメントを新しい順で返す。
// コメントが存在しない場合は空スライスを返す。
func (s *Service) List(ctx context.Context, gameID int) ([]*model.Comment, error) {
	comments, err := s.commentRepo.ListApprovedByGameID(ctx, gameID)
	if err != nil {
		slog.Error("failed to list comments",
			slog.Int("game_id", gameID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	return comments, nil
}

// Create はコメントを作成する。
// トリム後3文字未満はCOMMENT_TOO_SHORT、毒性判定で拒否された場合は
// COMMENT_REJECTEDを返し、どちらの場合も何も永続化しない。
// 投稿者の表示名とアバターは作成時点の値を非正規化して保存する。
func (s *Service) Create(ctx context.Context, gameID int, userID, text string) (*model.Comment, error) {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) < minCommentLength {
		return nil, model.NewCommentTooShortError()
	}

	if err := s.screen(ctx, trimmed); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, model.NewUnauthorizedError()
	}

	comment := &model.Comment{
		ID:         uuid.New().String(),
		GameID:     gameID,
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.AvatarURL,
		Text:       s.sanitizer.Sanitize(trimmed),
		IsApproved: true,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.metrics.RecordCommentCreated()
	slog.Info("comment created",
		slog.String("comment_id", comment.ID),
		slog.Int("game_id", gameID),
		slog.String("user_id", userID),
	)

	return comment, nil
}

// Delete は指定IDのコメントを削除する。
// 存在しない場合はCOMMENT_NOT_FOUND、所有者以外はFORBIDDENを返す。
func (s *Service) Delete(ctx context.Context, commentID, userID string) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return model.NewCommentNotFoundError(commentID)
	}
	if comment.UserID != userID {
		return model.NewForbiddenError()
	}

	if err := s.commentRepo.DeleteByID(ctx, commentID); err != nil {
		return err
	}

	slog.Info("comment deleted",
		slog.String("comment_id", commentID),
		slog.String("user_id", userID),
	)
	return nil
}

// screen は毒性スクリーニングを実行する。
// 拒否判定のみエラー（COMMENT_REJECTED）になる。スクリーナー自体の
// エラーは受理扱いにし、警告ログだけ残す（フェイルオープン）。
func (s *Service) screen(ctx context.Context, text string) error {
	start := time.Now()
	decision, err := s.screener.Screen(ctx, text)
	s.metrics.RecordScreeningLatency(time.Since(start))

	if err != nil {
		s.metrics.RecordScreeningOutcome("skipped")
		slog.Warn("toxicity screening skipped, accepting comment",
			slog.String("error", err.Error()),
		)
		return nil
	}

	if decision == moderation.DecisionRejected {
		s.metrics.RecordScreeningOutcome("rejected")
		return model.NewCommentRejectedError()
	}

	s.metrics.RecordScreeningOutcome("accepted")
	return nil
}
