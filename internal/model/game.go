package model

// Game は上流カタログプロバイダから取得するゲーム情報を表す。
// ローカルには一切永続化せず、リクエストごとに取得して使い捨てる。
// JSONタグは上流プロバイダのフィールド名に合わせている。
type Game struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Cover       string   `json:"cover"`
	Size        string   `json:"size"`
	Year        int      `json:"year"`
	Language    string   `json:"language"`
	Views       int      `json:"views"`
	Rate        float64  `json:"rate"`
	Description string   `json:"description"`
	Prints      []string `json:"prints"`

	// DownloadURL は通常ダウンロードリンク。
	// PremiumURL はログインユーザー専用リンクで、外向きレスポンスには
	// どの認証状態でも含めてはならない（ダウンロードリンク解決で
	// DownloadURLに畳み込まれる）。
	DownloadURL string `json:"download_url"`
	PremiumURL  string `json:"premium_url"`
}

// GameDetail はゲーム詳細の外向き表現。
// premiumリンクのフィールド自体を持たないため、シリアライズで漏れることがない。
type GameDetail struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Cover       string   `json:"cover"`
	Size        string   `json:"size"`
	Year        int      `json:"year"`
	Language    string   `json:"language"`
	Views       int      `json:"views"`
	Rate        float64  `json:"rate"`
	Description string   `json:"description"`
	Prints      []string `json:"prints"`
	DownloadURL string   `json:"download_url"`
}

// GameSummary は一覧・検索・レコメンドの外向き表現。
// ダウンロードリンクは詳細でのみ解決して返すため、一覧には含めない。
type GameSummary struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Cover    string  `json:"cover"`
	Size     string  `json:"size"`
	Year     int     `json:"year"`
	Language string  `json:"language"`
	Views    int     `json:"views"`
	Rate     float64 `json:"rate"`
}

// Category はゲームカテゴリを表す。上流から取得し永続化しない。
type Category struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// Page はページネーション結果を表す。
// Pageは1始まり。派生値であり永続化しない。
type Page[T any] struct {
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
	TotalGames int `json:"totalGames"`
	Games      []T `json:"games"`
}
