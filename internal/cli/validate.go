package cli

import (
	"errors"

	"bingo-editor/internal/schema"

	"github.com/spf13/cobra"
)

type validateResult struct {
	Valid  bool           `json:"valid"`
	Source string         `json:"source"`
	Boards int            `json:"boards"`
	Titles int            `json:"titles"`
	Issues []schema.Issue `json:"issues"`
}

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the document against the schema",
		Long:  "Loads the document and reports every schema issue. Exits non-zero when the document cannot be loaded or is invalid.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res := validateResult{Source: app.Source, Issues: []schema.Issue{}}
			doc, err := loadDocument(cmd.Context(), app)
			if err != nil {
				var verr *schema.ValidationError
				if !errors.As(err, &verr) {
					return writeLoadErr(cmd, err)
				}
				res.Issues = verr.Issues
				if werr := writeOut(cmd, app, map[string]any{"data": res}); werr != nil {
					return werr
				}
				return writeLoadErr(cmd, err)
			}

			res.Valid = true
			res.Boards = len(doc.Boards)
			res.Titles = len(doc.Titles)
			return writeOut(cmd, app, map[string]any{
				"data": res,
				"_hints": []string{
					"bingo show --format markdown --render",
					"bingo --source " + app.Source,
				},
			})
		},
	}
}
