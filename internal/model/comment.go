package model

import "time"

// Comment はゲームに対するユーザーコメントを表す。
// 投稿者の表示名とアバターは投稿時点のスナップショットとして
// 非正規化して保持し、以後のプロフィール変更には追従しない。
// IsApprovedは投稿時の毒性フィルタを通過した時点でtrueになる。
// 事前フィルタ方式のため現状falseに遷移するフローは存在しないが、
// 将来のモデレーション用にフィールドとして保持する。
type Comment struct {
	ID         string    `json:"id"`
	GameID     int       `json:"gameId"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userPhoto"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"timestamp"`
	IsApproved bool      `json:"isApproved"`
}
