// internal/content/index.go
package content

import (
	"context"
	"errors"
	"sort"

	"go_flight_academy/internal/model"
)

// Item はインデックス内の記事1件です。生成後は変更されません。
type Item struct {
	filename string
	meta     model.ContentMeta
	load     BodyLoader
	position int // ビルド順 (同点時の安定ソートに使う)
}

// ID は記事の正規識別子 (slug) を返します。進捗もこのキーで管理します。
func (it *Item) ID() string { return it.meta.Slug }

func (it *Item) Filename() string { return it.filename }

// Meta はメタデータのコピーを返します。呼び出し側で変更してもインデックスには影響しません。
func (it *Item) Meta() model.ContentMeta {
	m := it.meta
	m.Tags = make([]string, len(it.meta.Tags))
	copy(m.Tags, it.meta.Tags)
	if it.meta.Order != nil {
		o := *it.meta.Order
		m.Order = &o
	}
	if it.meta.PublishedAt != nil {
		p := *it.meta.PublishedAt
		m.PublishedAt = &p
	}
	return m
}

func (it *Item) Title() string  { return it.meta.Title }
func (it *Item) Series() string { return it.meta.Series }

// Body は本文を遅延読み込みします。
func (it *Item) Body(ctx context.Context) (string, error) {
	if it.load == nil {
		return "", errors.New("content item has no body loader")
	}
	return it.load(ctx)
}

// Index はビルド済みの不変なコンテンツ一覧です。
// 起動時に一度だけ構築し、依存性注入で各サービスに渡します。
type Index struct {
	items      []*Item
	bySlug     map[string]*Item
	series     map[string][]*Item // order 昇順
	rejected   []Rejection
	collisions []Collision
}

func newIndex() *Index {
	return &Index{
		bySlug: make(map[string]*Item),
		series: make(map[string][]*Item),
	}
}

// NewEmptyIndex は何も含まない Index を返します。
func NewEmptyIndex() *Index {
	idx := newIndex()
	idx.finish()
	return idx
}

func (idx *Index) add(it *Item) {
	it.position = len(idx.items)
	idx.items = append(idx.items, it)
	idx.bySlug[it.meta.Slug] = it
	if it.meta.InSeries() {
		idx.series[it.meta.Series] = append(idx.series[it.meta.Series], it)
	}
}

func (idx *Index) finish() {
	for _, members := range idx.series {
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].meta.SortOrder() < members[j].meta.SortOrder()
		})
	}
}

func (idx *Index) Len() int { return len(idx.items) }

// All はビルド順の全件を新しいスライスで返します。
func (idx *Index) All() []*Item {
	return append([]*Item(nil), idx.items...)
}

func (idx *Index) Rejected() []Rejection {
	return append([]Rejection(nil), idx.rejected...)
}

func (idx *Index) Collisions() []Collision {
	return append([]Collision(nil), idx.collisions...)
}

// FindBySlug は完全一致で検索します。見つからないのは通常のケースなので bool で返します。
func (idx *Index) FindBySlug(slug string) (*Item, bool) {
	it, ok := idx.bySlug[slug]
	return it, ok
}

// SeriesItems はシリーズの記事を order 昇順で返します。order 未指定は末尾。
func (idx *Index) SeriesItems(name string) []*Item {
	return append([]*Item(nil), idx.series[name]...)
}

// SeriesSummaries はシリーズ名の昇順で一覧を返します。
func (idx *Index) SeriesSummaries() []model.SeriesSummary {
	out := make([]model.SeriesSummary, 0, len(idx.series))
	for name, members := range idx.series {
		out = append(out, model.SeriesSummary{
			Name:      name,
			Count:     len(members),
			FirstSlug: members[0].ID(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// TagCounts はタグごとの件数を件数降順 (同数ならタグ名昇順) で返します。
func (idx *Index) TagCounts() []model.TagCount {
	counts := make(map[string]int)
	for _, it := range idx.items {
		for _, t := range it.meta.Tags {
			counts[t]++
		}
	}
	out := make([]model.TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, model.TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

// Navigation は前後の記事です。先頭・末尾・見つからない場合は nil。
type Navigation struct {
	Prev *Item
	Next *Item
}

// Navigation は隣接する記事を返します。
// preferSeries が true でシリーズに属する記事なら、シリーズの order 順で前後を決めます。
// それ以外は公開日の新しい順で、Prev が1つ新しい記事、Next が1つ古い記事です。
func (idx *Index) Navigation(slug string, preferSeries bool) Navigation {
	cur, ok := idx.bySlug[slug]
	if !ok {
		return Navigation{}
	}

	var ordered []*Item
	if preferSeries && cur.meta.InSeries() {
		ordered = idx.series[cur.meta.Series]
	} else {
		ordered = idx.byDate(idx.published(), true)
	}

	for i, it := range ordered {
		if it != cur {
			continue
		}
		var nav Navigation
		if i > 0 {
			nav.Prev = ordered[i-1]
		}
		if i < len(ordered)-1 {
			nav.Next = ordered[i+1]
		}
		return nav
	}
	return Navigation{}
}

// Related はスコアの高い関連記事を最大 limit 件返します。
// 同じシリーズなら +10、共通タグ1つにつき +2。スコア0は除外し、同点はビルド順。
func (idx *Index) Related(slug string, limit int) []*Item {
	cur, ok := idx.bySlug[slug]
	if !ok || limit <= 0 {
		return []*Item{}
	}

	curTags := make(map[string]struct{}, len(cur.meta.Tags))
	for _, t := range cur.meta.Tags {
		curTags[t] = struct{}{}
	}

	type scored struct {
		item  *Item
		score int
	}
	var candidates []scored
	for _, it := range idx.items {
		if it == cur {
			continue
		}
		score := 0
		if cur.meta.InSeries() && it.meta.Series == cur.meta.Series {
			score += 10
		}
		for _, t := range it.meta.Tags {
			if _, shared := curTags[t]; shared {
				score += 2
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{item: it, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]*Item, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.item)
	}
	return out
}

func (idx *Index) published() []*Item {
	out := make([]*Item, 0, len(idx.items))
	for _, it := range idx.items {
		if it.meta.PublishedAt != nil {
			out = append(out, it)
		}
	}
	return out
}

// byDate は公開日順に並べ替えた新しいスライスを返します。公開日なしは最も古い扱い。
func (idx *Index) byDate(items []*Item, newestFirst bool) []*Item {
	out := append([]*Item(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		c := compareDates(out[i], out[j])
		if newestFirst {
			return c > 0
		}
		return c < 0
	})
	return out
}
