package catalog

import "github.com/brunomdev/gamedex/internal/model"

// ResolveDownload は認証状態に応じてダウンロードリンクを解決した
// 外向き表現を返す。ログイン済みの場合はpremiumリンクがdownload_urlに
// 入り、premiumリンク自体はどちらの場合も外に出ない。
func ResolveDownload(game *model.Game, authenticated bool) *model.GameDetail {
	downloadURL := game.DownloadURL
	if authenticated {
		downloadURL = game.PremiumURL
	}

	return &model.GameDetail{
		ID:          game.ID,
		Title:       game.Title,
		Cover:       game.Cover,
		Size:        game.Size,
		Year:        game.Year,
		Language:    game.Language,
		Views:       game.Views,
		Rate:        game.Rate,
		Description: game.Description,
		Prints:      game.Prints,
		DownloadURL: downloadURL,
	}
}
