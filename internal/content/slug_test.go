package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "数字プレフィックスと camelCase", filename: "01-introToVFR.md", want: "intro-to-vfr"},
		{name: "アンダースコア区切りの数字プレフィックス", filename: "003_crosswindLandings.md", want: "crosswind-landings"},
		{name: "空白と記号", filename: "Weather & METAR  Basics!.md", want: "weather-metar-basics"},
		{name: "アクセント記号を除去", filename: "Navegación Aérea.md", want: "navegacion-aerea"},
		{name: "ディレクトリ付き", filename: "series/ppl/02-Radio Calls.md", want: "radio-calls"},
		{name: "前後のハイフンを除去", filename: "--hello--.md", want: "hello"},
		{name: "数字だけのファイル名は残す", filename: "747.md", want: "747"},
		{name: "略語の境界", filename: "XMLParser.md", want: "xml-parser"},
		{name: "空", filename: ".md", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.filename))
		})
	}
}

func TestNormalizeSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "空白とアンダースコア", in: "  My Custom_Slug ", want: "my-custom-slug"},
		{name: "camelCase はファイル名と同じく分割", in: "introToVFR", want: "intro-to-vfr"},
		{name: "小文字のハイフン区切りはそのまま", in: "stall-recovery", want: "stall-recovery"},
		{name: "アクセント記号を除去", in: "Aérea", want: "aerea"},
		{name: "記号だけなら空", in: "---", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSlug(tt.in))
		})
	}
}

// 同じ名前ならファイル名から導出しても明示指定しても同じ slug になる
func TestSlugifyMatchesNormalizeSlug(t *testing.T) {
	for _, name := range []string{"introToVFR", "XMLParser", "Weather & METAR  Basics!", "Navegación Aérea"} {
		assert.Equal(t, Slugify(name+".md"), NormalizeSlug(name), name)
	}
}
