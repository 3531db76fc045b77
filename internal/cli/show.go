package cli

import (
	"errors"
	"fmt"
	"strings"

	"bingo-editor/internal/format"
	"bingo-editor/internal/loader"
	"bingo-editor/internal/model"
	"bingo-editor/internal/publish"
	"bingo-editor/internal/schema"

	"github.com/spf13/cobra"
)

const formatMarkdown = "markdown"

func newShowCmd(app *App) *cobra.Command {
	var board int
	var sections []string
	var render bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Load, validate and print the event document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(cmd.Context(), app)
			if err != nil {
				return writeLoadErr(cmd, err)
			}

			secs, err := parseSections(sections)
			if err != nil {
				return writeErr(cmd, err)
			}

			if board < 0 || board > len(doc.Boards) {
				return writeErr(cmd, fmt.Errorf("board not found: %d", board))
			}

			if f := strings.ToLower(strings.TrimSpace(app.Format)); f == formatMarkdown || f == "md" {
				opt := publish.RenderOptions{Sections: secs}
				md := publish.RenderDocumentMarkdown(doc, opt)
				if board > 0 {
					md, err = publish.RenderBoardMarkdown(doc, board-1, opt)
					if err != nil {
						return writeErr(cmd, err)
					}
				}
				if render {
					md = publish.RenderTerminal(md, 0, publish.StyleDark) + "\n"
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), md)
				return err
			}

			// Theme and titles are kept when a single board is requested.
			if board > 0 {
				doc.Boards = doc.Boards[board-1 : board]
			}
			if app.Format == "" || app.Format == format.JSON {
				b, err := schema.Marshal(doc, app.Pretty)
				if err != nil {
					return writeErr(cmd, err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return err
			}
			if err := writeOut(cmd, app, schema.Export(doc)); err != nil {
				return writeErr(cmd, err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&board, "board", 0, "Only print this board (1-based)")
	cmd.Flags().StringSliceVar(&sections, "section", nil, "Markdown only: sections to include (quests,rewards,golden_tile)")
	cmd.Flags().BoolVar(&render, "render", false, "Markdown only: render for the terminal")
	return cmd
}

func parseSections(in []string) ([]model.Section, error) {
	out := make([]model.Section, 0, len(in))
	for _, s := range in {
		sec, err := model.ParseSection(s)
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, nil
}

// writeLoadErr prints the user-facing load error followed by any schema
// issues, one per line.
func writeLoadErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), loader.ErrorMessage(err))
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		for _, is := range verr.Issues {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", is.Path, is.Message)
		}
	}
	return err
}
