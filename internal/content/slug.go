// internal/content/slug.go
package content

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	numericPrefixRe   = regexp.MustCompile(`^\d+[-_.\s]+`)
	acronymBoundaryRe = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	camelBoundaryRe   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	nonAlnumRe        = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify はファイル名から slug を決定的に生成します。
// front matter で明示された slug も、数字プレフィックスと拡張子の除去以外は同じ規則 (NormalizeSlug) で正規化されます。
//
//	"01-introToVFR.md" -> "intro-to-vfr"
//	"Crosswind Landings.md" -> "crosswind-landings"
func Slugify(filename string) string {
	base := path.Base(filename)
	base = strings.TrimSuffix(base, path.Ext(base))
	if stripped := numericPrefixRe.ReplaceAllString(base, ""); stripped != "" {
		base = stripped
	}
	return NormalizeSlug(base)
}

// NormalizeSlug はアクセント記号を除去し、camelCase を分割して小文字のハイフン区切りにします。
//
//	"introToVFR" -> "intro-to-vfr"
func NormalizeSlug(s string) string {
	s = foldAccents(s)
	s = acronymBoundaryRe.ReplaceAllString(s, "${1}-${2}")
	s = camelBoundaryRe.ReplaceAllString(s, "${1}-${2}")
	return cleanSlug(s)
}

func cleanSlug(s string) string {
	s = strings.ToLower(s)
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
