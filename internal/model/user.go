// Package model はドメインモデルを定義する。
package model

import "time"

// User はGoogleログインで作成されたサービス利用ユーザーを表す。
// AvatarURLは初回ログイン時にIdPから取得したプロフィール画像のURL。
type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity は外部IdPとの紐付け情報を表す。
// (provider, provider_user_id) の組が一意であり、再ログイン時の
// 既存ユーザー特定に使用する。
// 将来的に複数のIdP（Google, GitHub等）に対応可能な構造。
type Identity struct {
	ID             string
	UserID         string
	Provider       string
	ProviderUserID string
	CreatedAt      time.Time
}

// Session はユーザーのログインセッションを表す。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
