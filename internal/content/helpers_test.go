package content

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func mustBuild(t *testing.T, mods ...StaticModule) *Index {
	t.Helper()
	idx, err := Build(context.Background(), NewMemorySource(mods...), BuildOptions{Logger: testLogger()})
	require.NoError(t, err)
	return idx
}

// published は公開日付きの StaticModule を作ります。
func published(filename, title, date string) StaticModule {
	return StaticModule{Filename: filename, Meta: RawMeta{Title: title, PublishedAt: date}}
}

func slugsOf(items []*Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID())
	}
	return out
}
