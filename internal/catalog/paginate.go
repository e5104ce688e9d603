package catalog

import (
	"strings"

	"github.com/brunomdev/gamedex/internal/model"
)

// DefaultPageSize はlimit未指定・不正時のページサイズ。
const DefaultPageSize = 24

// Paginate はitemsの1始まりページを切り出す。
// page/limitが1未満の場合はそれぞれ1/DefaultPageSizeに正規化する。
// 範囲外のページは空スライスを返し、エラーにはしない。
func Paginate[T any](items []T, page, limit int) model.Page[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}

	totalGames := len(items)
	totalPages := (totalGames + limit - 1) / limit

	startIndex := (page - 1) * limit
	endIndex := startIndex + limit

	paginated := []T{}
	if startIndex < totalGames {
		if endIndex > totalGames {
			endIndex = totalGames
		}
		paginated = items[startIndex:endIndex]
	}

	return model.Page[T]{
		Page:       page,
		TotalPages: totalPages,
		TotalGames: totalGames,
		Games:      paginated,
	}
}

// FilterByTitle はタイトルの部分一致（大文字小文字を区別しない）で絞り込む。
// queryが空の場合は入力をそのまま返す。
func FilterByTitle(games []model.Game, query string) []model.Game {
	if query == "" {
		return games
	}

	q := strings.ToLower(query)
	filtered := []model.Game{}
	for _, game := range games {
		if strings.Contains(strings.ToLower(game.Title), q) {
			filtered = append(filtered, game)
		}
	}
	return filtered
}
