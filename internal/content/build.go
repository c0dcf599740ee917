// internal/content/build.go
package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go_flight_academy/internal/model"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultLoadConcurrency = 8
	DefaultModuleTimeout   = 5 * time.Second
)

// BuildOptions はインデックス構築の設定です。
type BuildOptions struct {
	Logger *slog.Logger
	// Concurrency はメタデータを同時に読み込むモジュール数の上限
	Concurrency int
	// ModuleTimeout を過ぎたモジュールはスキップされます
	ModuleTimeout time.Duration
	// StrictSlugs が true の場合、slug の衝突でビルド自体を失敗させます
	StrictSlugs bool
}

// Rejection はインデックスから除外されたモジュールの記録です。
type Rejection struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Collision は slug 衝突の記録です。先に見つかった方 (Kept) が残ります。
type Collision struct {
	Slug    string `json:"slug"`
	Kept    string `json:"kept"`
	Dropped string `json:"dropped"`
}

type loadResult struct {
	meta RawMeta
	err  error
}

// Build はコンテンツモジュールを読み込み、検証・正規化・重複排除を行って Index を返します。
// 個々のモジュールの不備はログに残してスキップするだけで、ビルドは失敗しません。
// モジュールが0件でも空の Index を返します。
func Build(ctx context.Context, src Source, opts BuildOptions) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultLoadConcurrency
	}
	if opts.ModuleTimeout <= 0 {
		opts.ModuleTimeout = DefaultModuleTimeout
	}

	mods, err := src.Modules(ctx)
	if err != nil {
		logger.Error("Failed to enumerate content modules", "error", err)
		return nil, fmt.Errorf("content.Build: %w", err)
	}
	sortModules(mods)

	results := loadMetas(ctx, mods, opts)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("content.Build: %w", err)
	}

	idx := newIndex()
	for i, mod := range mods {
		res := results[i]
		if res.err != nil {
			logger.Warn("Skipping content module: metadata load failed", "filename", mod.Filename, "error", res.err)
			idx.rejected = append(idx.rejected, Rejection{Filename: mod.Filename, Reason: res.err.Error()})
			continue
		}

		meta, reason := normalizeMeta(mod.Filename, res.meta, logger)
		if reason != "" {
			logger.Warn("Skipping content module", "filename", mod.Filename, "reason", reason)
			idx.rejected = append(idx.rejected, Rejection{Filename: mod.Filename, Reason: reason})
			continue
		}

		if kept, dup := idx.bySlug[meta.Slug]; dup {
			logger.Warn("Slug collision, dropping later content module",
				"slug", meta.Slug,
				"kept", kept.filename,
				"dropped", mod.Filename,
			)
			idx.collisions = append(idx.collisions, Collision{Slug: meta.Slug, Kept: kept.filename, Dropped: mod.Filename})
			continue
		}

		idx.add(&Item{
			filename: mod.Filename,
			meta:     meta,
			load:     mod.Body,
		})
	}

	if opts.StrictSlugs && len(idx.collisions) > 0 {
		parts := make([]string, 0, len(idx.collisions))
		for _, c := range idx.collisions {
			parts = append(parts, fmt.Sprintf("%q (%s, %s)", c.Slug, c.Kept, c.Dropped))
		}
		return nil, fmt.Errorf("content.Build: %w: %s", model.ErrSlugCollision, strings.Join(parts, "; "))
	}

	idx.finish()
	logger.Info("Content index built",
		"items", idx.Len(),
		"series", len(idx.series),
		"rejected", len(idx.rejected),
		"collisions", len(idx.collisions),
	)
	return idx, nil
}

// loadMetas は各モジュールのメタデータを並行に読み込みます。
// 失敗やタイムアウトはモジュール単位で記録され、他のモジュールには影響しません。
func loadMetas(ctx context.Context, mods []Module, opts BuildOptions) []loadResult {
	results := make([]loadResult, len(mods))
	g := new(errgroup.Group)
	g.SetLimit(opts.Concurrency)

	for i, mod := range mods {
		i, mod := i, mod
		g.Go(func() error {
			results[i] = loadMeta(ctx, mod, opts.ModuleTimeout)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func loadMeta(ctx context.Context, mod Module, timeout time.Duration) loadResult {
	if mod.Meta == nil {
		return loadResult{err: errors.New("module has no metadata loader")}
	}
	mctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// ローダーが ctx を無視してハングしても、このモジュールだけを諦める
	done := make(chan loadResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- loadResult{err: fmt.Errorf("metadata loader panicked: %v", r)}
			}
		}()
		meta, err := mod.Meta(mctx)
		done <- loadResult{meta: meta, err: err}
	}()

	select {
	case res := <-done:
		return res
	case <-mctx.Done():
		return loadResult{err: mctx.Err()}
	}
}

// normalizeMeta は RawMeta を検証し、デフォルト値を補って ContentMeta にします。
// 除外すべき場合は理由を返します。
func normalizeMeta(filename string, raw RawMeta, logger *slog.Logger) (model.ContentMeta, string) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return model.ContentMeta{}, "missing required title"
	}

	slug := NormalizeSlug(raw.Slug)
	if slug == "" {
		if explicit := strings.TrimSpace(raw.Slug); explicit != "" {
			logger.Warn("Ignoring unusable slug, deriving from filename", "filename", filename, "slug", explicit)
		}
		slug = Slugify(filename)
	}
	if slug == "" {
		return model.ContentMeta{}, "could not derive slug"
	}

	meta := model.ContentMeta{
		Title:       title,
		Slug:        slug,
		Excerpt:     strings.TrimSpace(raw.Excerpt),
		Tags:        normalizeTags(raw.Tags),
		Series:      strings.TrimSpace(raw.Series),
		Type:        strings.TrimSpace(raw.Type),
		ReadingTime: raw.ReadingTime,
		Author:      strings.TrimSpace(raw.Author),
		Difficulty:  strings.TrimSpace(raw.Difficulty),
		CoverImage:  strings.TrimSpace(raw.CoverImage),
	}
	if raw.Order != nil {
		order := *raw.Order
		meta.Order = &order
	}
	if meta.Type == "" {
		meta.Type = model.DefaultContentType
	}
	if meta.ReadingTime <= 0 {
		meta.ReadingTime = model.DefaultReadingTime
	}
	if published := strings.TrimSpace(raw.PublishedAt); published != "" {
		t, err := parsePublishedAt(published)
		if err != nil {
			logger.Warn("Ignoring unparsable publishedAt", "filename", filename, "published_at", published)
		} else {
			meta.PublishedAt = &t
		}
	}
	return meta, ""
}

var publishedAtLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parsePublishedAt(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range publishedAtLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
