package publish

import (
	"bytes"
	"fmt"
	"strings"

	"bingo-editor/internal/model"
)

type RenderOptions struct {
	// Sections limits which board sections are rendered. Empty means all.
	Sections []model.Section
	// SkipEmpty omits sections without rows instead of printing "(none)".
	SkipEmpty bool
}

func (o RenderOptions) sections() []model.Section {
	if len(o.Sections) == 0 {
		return model.Sections()
	}
	return o.Sections
}

// RenderDocumentMarkdown renders the theme, the titles table and every board.
func RenderDocumentMarkdown(doc model.Document, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	theme := strings.TrimSpace(doc.Theme)
	if theme == "" {
		theme = "(untitled event)"
	}
	writeLn("# " + theme)
	writeLn("")

	writeLn("## Titles")
	writeLn("")
	if len(doc.Titles) == 0 {
		writeLn("(none)")
	} else {
		header := make([]string, 0, 2)
		for _, f := range model.TitleFields() {
			header = append(header, string(f))
		}
		rows := make([][]string, 0, len(doc.Titles))
		for _, t := range doc.Titles {
			rows = append(rows, []string{t.LanguageID, t.Translation})
		}
		writeTable(&buf, header, rows)
	}
	writeLn("")

	writeLn(fmt.Sprintf("## Boards (%d)", len(doc.Boards)))
	for i := range doc.Boards {
		writeLn("")
		buf.WriteString(renderBoard(doc.Boards[i], i, 3, opt))
	}
	return buf.String()
}

// RenderBoardMarkdown renders one board as a standalone page.
func RenderBoardMarkdown(doc model.Document, index int, opt RenderOptions) (string, error) {
	if index < 0 || index >= len(doc.Boards) {
		return "", fmt.Errorf("board not found: %d", index)
	}
	return renderBoard(doc.Boards[index], index, 1, opt), nil
}

func renderBoard(b model.Board, index, level int, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}
	h := strings.Repeat("#", level)

	writeLn(fmt.Sprintf("%s Board %d", h, index+1))
	for _, sec := range opt.sections() {
		n := b.Len(sec)
		if n == 0 && opt.SkipEmpty {
			continue
		}
		writeLn("")
		writeLn(fmt.Sprintf("%s# %s (%d)", h, sec.Label(), n))
		writeLn("")
		if n == 0 {
			writeLn("(none)")
			continue
		}
		fields := model.Fields(sec)
		header := make([]string, 0, len(fields))
		for _, f := range fields {
			header = append(header, f.Name)
		}
		rows := make([][]string, 0, n)
		for i := 0; i < n; i++ {
			r := b.Row(sec, i)
			cells := make([]string, 0, len(fields))
			for _, f := range fields {
				cells = append(cells, r.Value(f.Name))
			}
			rows = append(rows, cells)
		}
		writeTable(&buf, header, rows)
	}
	return buf.String()
}

func writeTable(buf *bytes.Buffer, header []string, rows [][]string) {
	line := func(cells []string) {
		buf.WriteString("|")
		for _, c := range cells {
			buf.WriteString(" ")
			buf.WriteString(escapeCell(c))
			buf.WriteString(" |")
		}
		buf.WriteString("\n")
	}
	line(header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	line(sep)
	for _, r := range rows {
		line(r)
	}
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	if strings.TrimSpace(s) == "" {
		return " "
	}
	return s
}
