package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Franco-Arce/Tuchi/internal/engine"
	"github.com/Franco-Arce/Tuchi/internal/loader"
	"github.com/Franco-Arce/Tuchi/internal/report"
)

func newChecksCommand() *cobra.Command {
	var (
		output     string
		configPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "checks <libro.xlsx> <extracto.xlsx>",
		Short: "Validate book check amounts against the bank statement",
		Long: `Checks annotates every book entry with the bank amounts found for
its check numbers: reconciled when the summed bank amount matches the
entry within tolerance, flagged otherwise. Book entries are never
dropped; entries without check numbers are reported as such.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(args[0], args[1], output, configPath, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "validacion.xlsx", "report file to write")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to tuchi.yaml")
	cmd.Flags().StringVar(&format, "format", "xlsx", "report format: xlsx or csv")

	return cmd
}

func runChecks(bookPath, bankPath, output, configPath, format string) error {
	log := newLogger()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	books, err := loader.BookFile(bookPath, cfg.Sheets.BookHeaderRow)
	if err != nil {
		return describeSchemaError(err)
	}
	banks, err := loader.BankFile(bankPath, cfg.Sheets.BankHeaderRow)
	if err != nil {
		return describeSchemaError(err)
	}

	res := engine.ValidateChecks(books, banks, cfg.Tolerance())

	log.Info().
		Int("total", res.Summary.Total).
		Int("with_checks", res.Summary.WithIdentifiers).
		Int("reconciled", res.Summary.Reconciled).
		Str("difference", res.Summary.Difference.StringFixed(2)).
		Msg("check validation complete")

	switch format {
	case "xlsx":
		if err := report.WriteChecks(output, banks, res); err != nil {
			return err
		}
	case "csv":
		path := strings.TrimSuffix(output, filepath.Ext(output)) + ".csv"
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		defer f.Close()
		if err := report.WriteCheckResults(f, res.Results); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		output = path
	default:
		return fmt.Errorf("unknown format %q (want xlsx or csv)", format)
	}

	log.Info().Str("output", output).Msg("report written")
	return nil
}
