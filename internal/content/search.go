// internal/content/search.go
package content

import (
	"sort"
	"strings"
)

type SortField string

const (
	SortByDate  SortField = "date"
	SortByTitle SortField = "title"
	SortByOrder SortField = "order"
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// SearchOptions は Search の条件です。ゼロ値は「公開済みの全件を公開日の新しい順」。
type SearchOptions struct {
	Query  string
	Tags   []string
	Series string

	SortBy    SortField
	SortOrder SortDirection

	// IncludeUnpublished が false なら publishedAt のない記事を除外します
	IncludeUnpublished bool

	Limit  int // 0 なら無制限
	Offset int
}

// SearchResult の Total はページング前の件数です。
type SearchResult struct {
	Items []*Item
	Total int
}

// Search は条件に合う記事を新しいスライスで返します。インデックス自体は変更しません。
func (idx *Index) Search(opts SearchOptions) SearchResult {
	query := strings.ToLower(strings.TrimSpace(opts.Query))
	tagFilter := make(map[string]struct{}, len(opts.Tags))
	for _, t := range opts.Tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tagFilter[t] = struct{}{}
		}
	}

	matched := make([]*Item, 0, len(idx.items))
	for _, it := range idx.items {
		if !opts.IncludeUnpublished && it.meta.PublishedAt == nil {
			continue
		}
		if opts.Series != "" && it.meta.Series != opts.Series {
			continue
		}
		if len(tagFilter) > 0 && !hasAnyTag(it, tagFilter) {
			continue
		}
		if query != "" && !matchesQuery(it, query) {
			continue
		}
		matched = append(matched, it)
	}

	sortItems(matched, opts.SortBy, opts.SortOrder)

	total := len(matched)
	start := opts.Offset
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	end := total
	if opts.Limit > 0 && start+opts.Limit < total {
		end = start + opts.Limit
	}
	return SearchResult{Items: matched[start:end], Total: total}
}

func hasAnyTag(it *Item, filter map[string]struct{}) bool {
	for _, t := range it.meta.Tags {
		if _, ok := filter[t]; ok {
			return true
		}
	}
	return false
}

// matchesQuery はタイトル・抜粋・タグへの大文字小文字を区別しない部分一致です。
func matchesQuery(it *Item, query string) bool {
	if strings.Contains(strings.ToLower(it.meta.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(it.meta.Excerpt), query) {
		return true
	}
	for _, t := range it.meta.Tags {
		if strings.Contains(t, query) {
			return true
		}
	}
	return false
}

func sortItems(items []*Item, by SortField, dir SortDirection) {
	if by == "" {
		by = SortByDate
	}
	if dir == "" {
		dir = SortDesc
	}
	sort.SliceStable(items, func(i, j int) bool {
		var c int
		switch by {
		case SortByTitle:
			c = strings.Compare(items[i].meta.Title, items[j].meta.Title)
		case SortByOrder:
			c = items[i].meta.SortOrder() - items[j].meta.SortOrder()
		default:
			c = compareDates(items[i], items[j])
		}
		if dir == SortDesc {
			return c > 0
		}
		return c < 0
	})
}

// compareDates は公開日を比較します。公開日なしは最も古い扱い。
func compareDates(a, b *Item) int {
	pa, pb := a.meta.PublishedAt, b.meta.PublishedAt
	switch {
	case pa == nil && pb == nil:
		return 0
	case pa == nil:
		return -1
	case pb == nil:
		return 1
	case pa.Before(*pb):
		return -1
	case pa.After(*pb):
		return 1
	}
	return 0
}
