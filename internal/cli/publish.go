package cli

import (
	"errors"
	"strings"

	"bingo-editor/internal/publish"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var overwrite bool
	var skipEmpty bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export the document as Markdown pages (index + one page per board)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			toDir = strings.TrimSpace(toDir)
			if toDir == "" {
				return writeErr(cmd, errors.New("missing --to"))
			}
			doc, err := loadDocument(cmd.Context(), app)
			if err != nil {
				return writeLoadErr(cmd, err)
			}
			res, err := publish.WriteDocument(doc, toDir, publish.WriteOptions{
				Overwrite: overwrite,
				Render:    publish.RenderOptions{SkipEmpty: skipEmpty},
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			app.log.Info("published markdown", zap.Int("files", len(res.Written)))
			return writeOut(cmd, app, map[string]any{
				"data": res,
			})
		},
	}

	cmd.Flags().StringVar(&toDir, "to", "", "Output directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&skipEmpty, "skip-empty", false, "Omit sections without rows")
	return cmd
}
