package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/brunomdev/gamedex/internal/model"
)

// PostgresCommentRepo はPostgreSQLを使用したコメントリポジトリ。
type PostgresCommentRepo struct {
	db *sql.DB
}

// NewPostgresCommentRepo はPostgresCommentRepoを生成する。
func NewPostgresCommentRepo(db *sql.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

// Create はコメントを作成する。
func (r *PostgresCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (id, game_id, user_id, user_name, user_avatar, text, is_approved, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		comment.ID, comment.GameID, comment.UserID, comment.UserName, comment.UserAvatar,
		comment.Text, comment.IsApproved, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// ListApprovedByGameID は指定ゲームの承認済みコメントを新しい順で返す。
func (r *PostgresCommentRepo) ListApprovedByGameID(ctx context.Context, gameID int) ([]*model.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, game_id, user_id, user_name, user_avatar, text, is_approved, created_at
		 FROM comments
		 WHERE game_id = $1 AND is_approved = TRUE
		 ORDER BY created_at DESC, id DESC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		comment := &model.Comment{}
		if err := rows.Scan(
			&comment.ID, &comment.GameID, &comment.UserID, &comment.UserName,
			&comment.UserAvatar, &comment.Text, &comment.IsApproved, &comment.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

// FindByID は指定IDのコメントを取得する。見つからない場合はnilを返す。
func (r *PostgresCommentRepo) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, game_id, user_id, user_name, user_avatar, text, is_approved, created_at
		 FROM comments
		 WHERE id = $1`,
		id,
	).Scan(
		&comment.ID, &comment.GameID, &comment.UserID, &comment.UserName,
		&comment.UserAvatar, &comment.Text, &comment.IsApproved, &comment.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	return comment, nil
}

// DeleteByID は指定IDのコメントを削除する。
func (r *PostgresCommentRepo) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// compile-time interface check
var _ CommentRepository = (*PostgresCommentRepo)(nil)
