package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/dentplan/internal/catalog"
	"github.com/alexanderramin/dentplan/internal/cli/formatter"
	"github.com/alexanderramin/dentplan/internal/sheet"
	"github.com/spf13/cobra"
)

func newCategoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Browse and maintain the treatment catalog",
	}

	cmd.AddCommand(
		newCategoryListCmd(app),
		newCategoryImportCmd(app),
		newCategoryExportCmd(app),
	)

	return cmd
}

func newCategoryListCmd(app *App) *cobra.Command {
	var query string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List treatment categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.Categories.Catalog(cmd.Context())
			if err != nil {
				return err
			}
			sel := catalog.NewSelector(cat, catalog.WithDisplayLimit(app.Config.Catalog.DisplayLimit))
			page := sel.Page(nil, query, all)

			out := cmd.OutOrStdout()
			if page.Empty() {
				fmt.Fprintln(out, formatter.NoCategoriesMatch(query))
				return nil
			}
			fmt.Fprint(out, formatter.FormatCategories(page.Items, app.currency()))
			if page.HasMore && !page.ShowingAll {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("showing %d of %d, use --all", len(page.Items), page.Total)))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Case-insensitive search over name and description")
	cmd.Flags().BoolVar(&all, "all", false, "Show every match instead of the first few")

	return cmd
}

func newCategoryImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Add or update categories from an .xlsx sheet (id, name, base_cost, description)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			cats, err := sheet.ReadCategories(f)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			n, err := app.Categories.Import(cmd.Context(), cats)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d categories\n", n)
			return nil
		},
	}
}

func newCategoryExportCmd(app *App) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the catalog to an .xlsx sheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := writeFile(out, func(f *os.File) error { return sheet.WriteCategories(f, cats) }); err != nil {
				return fmt.Errorf("exporting catalog: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d categories to %s\n", len(cats), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "categories.xlsx", "Output file")

	return cmd
}
