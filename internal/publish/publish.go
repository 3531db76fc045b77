package publish

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"bingo-editor/internal/model"
)

type WriteOptions struct {
	Overwrite bool
	Render    RenderOptions
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteDocument writes index.md plus one page per board under toDir:
//
//	<toDir>/index.md
//	<toDir>/boards/board-1.md
func WriteDocument(doc model.Document, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	boardsDir := filepath.Join(toDir, "boards")
	if err := os.MkdirAll(boardsDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderDocumentMarkdown(doc, opt.Render)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}

	// Stop on first error.
	written := []string{indexPath}
	for i := range doc.Boards {
		md, err := RenderBoardMarkdown(doc, i, opt.Render)
		if err != nil {
			return WriteResult{}, err
		}
		p := filepath.Join(boardsDir, fmt.Sprintf("board-%d.md", i+1))
		if err := writeFile(p, []byte(md), opt.Overwrite); err != nil {
			return WriteResult{}, err
		}
		written = append(written, p)
	}

	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
