// internal/content/module.go
package content

import (
	"context"
	"sort"
)

// RawMeta はコンテンツモジュールが持つ未検証のメタデータです (front matter)。
type RawMeta struct {
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	Excerpt     string   `yaml:"excerpt"`
	Tags        []string `yaml:"tags"`
	Series      string   `yaml:"series"`
	Order       *int     `yaml:"order"`
	Type        string   `yaml:"type"`
	ReadingTime int      `yaml:"readingTime"`
	PublishedAt string   `yaml:"publishedAt"`
	Author      string   `yaml:"author"`
	Difficulty  string   `yaml:"difficulty"`
	CoverImage  string   `yaml:"coverImage"`
}

// MetaLoader はメタデータだけを読み込みます。本文を読んではいけません。
type MetaLoader func(ctx context.Context) (RawMeta, error)

// BodyLoader は本文を遅延読み込みします。
type BodyLoader func(ctx context.Context) (string, error)

// Module はコンテンツ1件分の入力です。
type Module struct {
	Filename string
	Meta     MetaLoader
	Body     BodyLoader
}

// Source はコンテンツモジュールの一覧を提供します。
type Source interface {
	Modules(ctx context.Context) ([]Module, error)
}

// StaticModule は MemorySource に渡す1件分のデータです。
type StaticModule struct {
	Filename string
	Meta     RawMeta
	Body     string
}

// MemorySource はメモリ上の固定データから Module を作ります (テスト・シード用)。
type MemorySource struct {
	modules []StaticModule
}

func NewMemorySource(modules ...StaticModule) *MemorySource {
	return &MemorySource{modules: modules}
}

func (s *MemorySource) Modules(ctx context.Context) ([]Module, error) {
	out := make([]Module, 0, len(s.modules))
	for _, sm := range s.modules {
		out = append(out, Module{
			Filename: sm.Filename,
			Meta: func(context.Context) (RawMeta, error) {
				return sm.Meta, nil
			},
			Body: func(context.Context) (string, error) {
				return sm.Body, nil
			},
		})
	}
	return out, nil
}

// sortModules はファイル名順に並べ替えます。slug 衝突時の「先勝ち」を決定的にするため。
func sortModules(mods []Module) {
	sort.SliceStable(mods, func(i, j int) bool {
		return mods[i].Filename < mods[j].Filename
	})
}
