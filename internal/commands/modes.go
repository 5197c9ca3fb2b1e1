package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/csheth/textcraft/internal/textmode"
)

func addModes(topLevel *cobra.Command) {
	showPrompts := false
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List the processing and style modes.",
		Example: `
textcraft modes
textcraft modes --prompts
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printModes(cmd.OutOrStdout(), showPrompts)
		},
	}
	cmd.Flags().BoolVarP(&showPrompts, "prompts", "p", false, "Include the instruction sent for each mode.")

	topLevel.AddCommand(cmd)
}

func printModes(w io.Writer, showPrompts bool) error {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	for _, kind := range []textmode.Kind{textmode.KindProcessing, textmode.KindStyle} {
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 72
		tbl.Wrap = true

		header := []interface{}{bold.Sprint("ID"), bold.Sprint("Name"), bold.Sprint("Default")}
		if showPrompts {
			header = append(header, bold.Sprint("Prompt"))
		}
		tbl.AddRow(header...)
		for _, mode := range textmode.OfKind(kind) {
			row := []interface{}{mode.ID, mode.Name, defaultMarker(mode)}
			if showPrompts {
				row = append(row, faint.Sprint(mode.Prompt))
			}
			tbl.AddRow(row...)
		}

		if _, err := fmt.Fprintf(w, "%s modes\n%s\n\n", kindTitle(kind), tbl); err != nil {
			return err
		}
	}
	return nil
}

func kindTitle(kind textmode.Kind) string {
	if kind == textmode.KindStyle {
		return "Style"
	}
	return "Processing"
}

func defaultMarker(mode textmode.Mode) string {
	if mode.ID == textmode.DefaultProcessingMode || mode.ID == textmode.DefaultStyleMode {
		return "*"
	}
	return ""
}
