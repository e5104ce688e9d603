// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
// メッセージはユーザー向けのためポルトガル語で保持する。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, catalog, comment, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeCommentTooShort     = "COMMENT_TOO_SHORT"
	ErrCodeCommentRejected     = "COMMENT_REJECTED"
	ErrCodeCommentNotFound     = "COMMENT_NOT_FOUND"
	ErrCodeForbidden           = "FORBIDDEN"
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeInvalidRequest      = "INVALID_REQUEST"
)

// NewUpstreamUnavailableError は上流カタログプロバイダの呼び出し失敗エラーを生成する。
// リトライは行わず、そのままサービスエラーとして呼び出し元に返す。
func NewUpstreamUnavailableError() *APIError {
	return &APIError{
		Code:     ErrCodeUpstreamUnavailable,
		Message:  "Não foi possível buscar os dados do catálogo.",
		Category: "catalog",
		Action:   "Tente novamente em alguns instantes.",
	}
}

// NewCommentTooShortError はコメントが短すぎる場合のエラーを生成する。
func NewCommentTooShortError() *APIError {
	return &APIError{
		Code:     ErrCodeCommentTooShort,
		Message:  "Comentário muito curto.",
		Category: "validation",
		Action:   "Escreva um comentário com pelo menos 3 caracteres.",
	}
}

// NewCommentRejectedError は毒性フィルタに拒否されたコメントのエラーを生成する。
func NewCommentRejectedError() *APIError {
	return &APIError{
		Code:     ErrCodeCommentRejected,
		Message:  "Seu comentário foi bloqueado por conter linguagem ofensiva.",
		Category: "comment",
		Action:   "Revise o texto e tente novamente.",
	}
}

// NewCommentNotFoundError はコメント未検出エラーを生成する。
func NewCommentNotFoundError(commentID string) *APIError {
	return &APIError{
		Code:     ErrCodeCommentNotFound,
		Message:  fmt.Sprintf("Comentário não encontrado: %s", commentID),
		Category: "comment",
		Action:   "Atualize a página e tente novamente.",
	}
}

// NewForbiddenError は他人のリソースを操作しようとした場合のエラーを生成する。
func NewForbiddenError() *APIError {
	return &APIError{
		Code:     ErrCodeForbidden,
		Message:  "Você não pode excluir comentários de outras pessoas.",
		Category: "auth",
		Action:   "Apenas o autor pode excluir o próprio comentário.",
	}
}

// NewUnauthorizedError は未認証リクエストのエラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "Você precisa estar logado para fazer isso.",
		Category: "auth",
		Action:   "Faça login com sua conta Google.",
	}
}

// NewInvalidRequestError は不正なリクエストのエラーを生成する。
func NewInvalidRequestError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidRequest,
		Message:  fmt.Sprintf("Requisição inválida: %s", reason),
		Category: "validation",
		Action:   "Verifique os dados enviados e tente novamente.",
	}
}
