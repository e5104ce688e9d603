// Package security はアプリケーションのセキュリティ機能を提供する。
//
// CommentSanitizerService はユーザー投稿コメントの本文をサニタイズし、
// XSS攻撃などのセキュリティリスクからユーザーを保護する。
// フロントエンドがコメント本文をそのままDOMに挿入するため、
// サーバー側でプレーンテキストを強制する。
package security

import (
	"github.com/microcosm-cc/bluemonday"
)

// CommentSanitizerService はコメント本文のサニタイズ機能のインターフェースを定義する。
// コメント保存前に使用される。
type CommentSanitizerService interface {
	// Sanitize はコメント本文からすべてのHTMLタグを除去し、
	// プレーンテキストのみを返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(text string) string
}

// commentSanitizer はCommentSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type commentSanitizer struct {
	policy *bluemonday.Policy
}

// NewCommentSanitizer はCommentSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyはすべてのタグと属性を除去する。
func NewCommentSanitizer() *commentSanitizer {
	return &commentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize はコメント本文からすべてのHTMLタグを除去する。
func (s *commentSanitizer) Sanitize(text string) string {
	return s.policy.Sanitize(text)
}

// compile-time interface check
var _ CommentSanitizerService = (*commentSanitizer)(nil)
