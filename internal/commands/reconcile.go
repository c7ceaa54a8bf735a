package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Franco-Arce/Tuchi/internal/engine"
	"github.com/Franco-Arce/Tuchi/internal/loader"
	"github.com/Franco-Arce/Tuchi/internal/model"
	"github.com/Franco-Arce/Tuchi/internal/report"
	"github.com/Franco-Arce/Tuchi/internal/summary"
)

func newReconcileCommand() *cobra.Command {
	var (
		output     string
		configPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "reconcile <libro.xlsx> <extracto.xlsx>",
		Short: "Reconcile the accounting book against a bank statement",
		Long: `Reconcile matches book entries against bank statement lines by the
check numbers embedded in their descriptions, classifies whatever does
not match into temporal and permanent differences, and reconstructs
the running-balance statement from the bank's closing balance to the
book's.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(args[0], args[1], output, configPath, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "conciliacion.xlsx", "report file to write")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to tuchi.yaml")
	cmd.Flags().StringVar(&format, "format", "xlsx", "report format: xlsx or csv")

	return cmd
}

func runReconcile(bookPath, bankPath, output, configPath, format string) error {
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

	log.Info().
		Int("book_entries", len(books)).
		Int("bank_entries", len(banks)).
		Msg("sources loaded")

	res := engine.Reconcile(books, banks, cfg.Categorizer())

	level := cfg.ResidualThresholds().Classify(res.Summary.Residual)
	log.Info().
		Int("matched", res.Summary.MatchedEntries).
		Int("temporal", res.Summary.TemporalCount).
		Int("permanent", res.Summary.PermanentCount).
		Str("residual", res.Summary.Residual.StringFixed(2)).
		Str("residual_level", string(level)).
		Msg("reconciliation complete")
	if res.Summary.SharedBankMatches > 0 {
		log.Warn().
			Int("bank_entries", res.Summary.SharedBankMatches).
			Msg("bank entries matched by more than one book entry; review for double-counting")
	}

	switch format {
	case "xlsx":
		if err := report.WriteReconcile(output, books, banks, res); err != nil {
			return err
		}
	case "csv":
		if err := writeReconcileCSV(output, res); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want xlsx or csv)", format)
	}

	log.Info().Str("output", output).Msg("report written")
	if level == summary.ResidualSignificant {
		fmt.Fprintf(os.Stderr, "warning: unexplained difference of %s exceeds %s\n",
			res.Summary.Residual.StringFixed(2), cfg.ResidualThresholds().Significant.StringFixed(2))
	}
	return nil
}

// writeReconcileCSV writes the difference listings as two CSV files
// next to output, one per bucket.
func writeReconcileCSV(output string, res *engine.ReconcileResult) error {
	base := strings.TrimSuffix(output, filepath.Ext(output))
	all := append(append([]model.Difference{}, res.BookDiffs...), res.BankDiffs...)

	var temporal, permanent []model.Difference
	for _, d := range all {
		if d.Category.Temporary {
			temporal = append(temporal, d)
		} else {
			permanent = append(permanent, d)
		}
	}

	if err := writeDifferencesFile(base+"_temporales.csv", temporal); err != nil {
		return err
	}
	return writeDifferencesFile(base+"_permanentes.csv", permanent)
}

func writeDifferencesFile(path string, diffs []model.Difference) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := report.WriteDifferences(f, diffs); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// describeSchemaError keeps schema errors user-facing: the message
// already names the detected columns so a wrong-template upload is
// diagnosable from the CLI output alone.
func describeSchemaError(err error) error {
	var serr *loader.SchemaError
	if errors.As(err, &serr) {
		return fmt.Errorf("input does not look like the expected template: %w", serr)
	}
	return err
}
