// internal/content/dirsource.go
package content

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

var errNoFrontMatter = errors.New("front matter not found")

// DirSource は fs.FS (ディスク上のディレクトリや embed.FS) から
// markdown ファイルを読み込む Source です。
// メタデータは先頭の YAML front matter から取得し、本文は Body 呼び出し時に読み込みます。
type DirSource struct {
	fsys fs.FS
	ext  string
}

func NewDirSource(fsys fs.FS) *DirSource {
	return &DirSource{fsys: fsys, ext: ".md"}
}

func (s *DirSource) Modules(ctx context.Context) ([]Module, error) {
	var mods []Module
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		name := d.Name()
		if d.IsDir() {
			// "_drafts" や ".git" のようなディレクトリは対象外
			if p != "." && (strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(path.Ext(name), s.ext) {
			return nil
		}
		mods = append(mods, Module{
			Filename: p,
			Meta: func(context.Context) (RawMeta, error) {
				return s.readMeta(p)
			},
			Body: func(context.Context) (string, error) {
				return s.readBody(p)
			},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("DirSource.Modules: %w", err)
	}
	return mods, nil
}

// readMeta は front matter 部分だけを読みます。
func (s *DirSource) readMeta(p string) (RawMeta, error) {
	f, err := s.fsys.Open(p)
	if err != nil {
		return RawMeta{}, err
	}
	defer f.Close()

	header, err := readFrontMatter(bufio.NewReader(f))
	if err != nil {
		return RawMeta{}, fmt.Errorf("%s: %w", p, err)
	}
	var meta RawMeta
	if err := yaml.Unmarshal(header, &meta); err != nil {
		return RawMeta{}, fmt.Errorf("%s: parse front matter: %w", p, err)
	}
	return meta, nil
}

func (s *DirSource) readBody(p string) (string, error) {
	data, err := fs.ReadFile(s.fsys, p)
	if err != nil {
		return "", err
	}
	return stripFrontMatter(data), nil
}

func readFrontMatter(r *bufio.Reader) ([]byte, error) {
	first, err := r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if strings.TrimSpace(strings.TrimPrefix(first, "\ufeff")) != frontMatterDelim {
		return nil, errNoFrontMatter
	}

	var buf bytes.Buffer
	for {
		line, err := r.ReadString('\n')
		if strings.TrimSpace(line) == frontMatterDelim {
			return buf.Bytes(), nil
		}
		buf.WriteString(line)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("unterminated front matter")
			}
			return nil, err
		}
	}
}

func stripFrontMatter(data []byte) string {
	text := strings.TrimPrefix(string(data), "\ufeff")
	lines := strings.SplitAfter(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelim {
		return text
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelim {
			return strings.TrimLeft(strings.Join(lines[i+1:], ""), "\r\n")
		}
	}
	return text
}
