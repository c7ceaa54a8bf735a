// Package report renders run results into the multi-sheet workbook
// and CSV listings callers hand to the bookkeeper. Only data content
// is written; styling is the presentation layer's problem.
package report

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Franco-Arce/Tuchi/internal/engine"
	"github.com/Franco-Arce/Tuchi/internal/model"
	"github.com/Franco-Arce/Tuchi/internal/statement"
)

// Sheet names of the reconciliation workbook.
const (
	SheetStatement = "Conciliacion Bancaria"
	SheetMatched   = "Items Coincidentes"
	SheetTemporal  = "Diferencias Temporales"
	SheetPermanent = "Diferencias Permanentes"
	SheetSummary   = "Resumen"
)

// Sheet names of the check-validation workbook.
const (
	SheetChecks      = "Validacion Cheques"
	SheetCheckDetail = "Detalle Coincidencias"
)

const dateFormat = "2006-01-02"

// WriteReconcile writes the five-sheet variant-a workbook.
func WriteReconcile(path string, books []model.BookEntry, banks []model.BankEntry, r *engine.ReconcileResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeStatementSheet(f, r.Statement); err != nil {
		return err
	}
	if err := writeMatchedSheet(f, books, banks, r.Match.Links); err != nil {
		return err
	}
	if err := writeDifferenceSheet(f, SheetTemporal, temporal(r.BookDiffs, r.BankDiffs)); err != nil {
		return err
	}
	if err := writeDifferenceSheet(f, SheetPermanent, permanent(r.BookDiffs, r.BankDiffs)); err != nil {
		return err
	}
	if err := writeSummarySheet(f, reconcileMetrics(r)); err != nil {
		return err
	}

	// Drop excelize's default sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("deleting default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report %s: %w", path, err)
	}
	return nil
}

// WriteChecks writes the three-sheet variant-b workbook.
func WriteChecks(path string, banks []model.BankEntry, r *engine.ChecksResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeChecksSheet(f, r.Results); err != nil {
		return err
	}
	if err := writeCheckDetailSheet(f, banks, r.Results); err != nil {
		return err
	}
	if err := writeSummarySheet(f, checksMetrics(r)); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("deleting default sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving report %s: %w", path, err)
	}
	return nil
}

func writeStatementSheet(f *excelize.File, st *statement.Statement) error {
	rows := [][]any{
		{st.Title},
		{"Signo", "Concepto", "Detalle", "Se ajusta sin asiento contable", "Se ajusta con asiento contable", "Monto", "Saldo Acumulado"},
	}
	for _, l := range st.Lines {
		row := make([]any, 7)
		row[0] = l.Sign
		row[1] = l.Concept
		row[2] = l.Detail
		switch l.Kind {
		case statement.LineDetail:
			if l.RequiresEntry {
				row[4] = money(l.Amount)
			} else {
				row[3] = money(l.Amount)
			}
			row[5] = money(l.Amount)
			row[6] = money(l.Balance)
		case statement.LinePlaceholder:
			row[5] = money(decimal.Zero)
			row[6] = money(l.Balance)
		case statement.LineBalance:
			row[6] = money(l.Balance)
		}
		rows = append(rows, row)
	}
	rows = append(rows, []any{"", "Saldo final Libro (segun registros)", "", "", "", "", money(st.BookBalance)})
	rows = append(rows, []any{"", "Diferencia no explicada", "", "", "", "", money(st.Residual)})

	return writeSheet(f, SheetStatement, rows)
}

func writeMatchedSheet(f *excelize.File, books []model.BookEntry, banks []model.BankEntry, links []model.MatchLink) error {
	bookByRow := make(map[int]model.BookEntry, len(books))
	for _, b := range books {
		bookByRow[b.Row] = b
	}
	bankByRow := make(map[int]model.BankEntry, len(banks))
	for _, b := range banks {
		bankByRow[b.Row] = b
	}

	rows := [][]any{{
		"Identificador", "Fecha Libro", "Concepto", "Monto Libro",
		"Fecha Banco", "Descripcion", "Monto Banco",
	}}
	for _, l := range links {
		if !l.Matched {
			continue
		}
		book := bookByRow[l.BookRow]
		bank := bankByRow[l.BankRow]
		rows = append(rows, []any{
			l.Identifier,
			day(book.Date), book.Concept, money(book.Amount),
			day(bank.Date), bank.Description, money(bank.Amount),
		})
	}
	return writeSheet(f, SheetMatched, rows)
}

func writeDifferenceSheet(f *excelize.File, sheet string, diffs []model.Difference) error {
	rows := [][]any{{"Fecha", "Concepto", "Monto", "Subcategoria", "Origen"}}
	for _, d := range diffs {
		rows = append(rows, []any{
			day(d.Date), d.Description, money(d.Amount), d.Category.Subcategory, string(d.Source),
		})
	}
	return writeSheet(f, sheet, rows)
}

func writeChecksSheet(f *excelize.File, results []model.CheckResult) error {
	rows := [][]any{{
		"Fecha", "Concepto", "Monto Libro", "Cheques", "Monto Banco", "Diferencia", "Estado",
	}}
	for _, r := range results {
		rows = append(rows, []any{
			day(r.Entry.Date),
			r.Entry.Concept,
			money(r.Entry.Amount),
			len(r.Entry.Identifiers),
			money(r.BankTotal),
			money(r.Difference),
			string(r.Status),
		})
	}
	return writeSheet(f, SheetChecks, rows)
}

func writeCheckDetailSheet(f *excelize.File, banks []model.BankEntry, results []model.CheckResult) error {
	bankByRow := make(map[int]model.BankEntry, len(banks))
	for _, b := range banks {
		bankByRow[b.Row] = b
	}

	rows := [][]any{{"Fila Libro", "Cheque", "Fila Banco", "Monto Banco", "Coincide"}}
	for _, r := range results {
		for _, l := range r.Links {
			row := []any{l.BookRow, l.Identifier, nil, nil, l.Matched}
			if l.Matched {
				row[2] = l.BankRow
				row[3] = money(bankByRow[l.BankRow].Amount)
			}
			rows = append(rows, row)
		}
	}
	return writeSheet(f, SheetCheckDetail, rows)
}

func writeSummarySheet(f *excelize.File, metrics []metric) error {
	rows := [][]any{{"Métrica", "Valor"}}
	for _, m := range metrics {
		rows = append(rows, []any{m.name, m.value})
	}
	return writeSheet(f, SheetSummary, rows)
}

func writeSheet(f *excelize.File, name string, rows [][]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %q: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("writing sheet %q row %d: %w", name, i+1, err)
		}
	}
	return nil
}

type metric struct {
	name  string
	value any
}

func reconcileMetrics(r *engine.ReconcileResult) []metric {
	s := r.Summary
	return []metric{
		{"saldo_final_banco", money(s.BankEnding)},
		{"saldo_final_libro", money(s.BookEnding)},
		{"diferencia_total", money(s.Difference)},
		{"items_coinciden", s.MatchedEntries},
		{"items_coinciden_cheques", s.MatchedLinks},
		{"diferencias_temporales_count", s.TemporalCount},
		{"diferencias_permanentes_count", s.PermanentCount},
		{"diferencias_temporales_monto", money(s.TemporalAmount)},
		{"diferencias_permanentes_monto", money(s.PermanentAmount)},
		{"residuo_no_explicado", money(s.Residual)},
		{"bancos_compartidos", s.SharedBankMatches},
	}
}

func checksMetrics(r *engine.ChecksResult) []metric {
	s := r.Summary
	return []metric{
		{"items_totales", s.Total},
		{"items_con_cheques", s.WithIdentifiers},
		{"items_conciliados", s.Reconciled},
		{"monto_analizado", money(s.AnalyzedAmount)},
		{"monto_conciliado", money(s.ReconciledAmount)},
		{"diferencia_global", money(s.Difference)},
	}
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}

func temporal(bookDiffs, bankDiffs []model.Difference) []model.Difference {
	return filterDiffs(bookDiffs, bankDiffs, true)
}

func permanent(bookDiffs, bankDiffs []model.Difference) []model.Difference {
	return filterDiffs(bookDiffs, bankDiffs, false)
}

func filterDiffs(bookDiffs, bankDiffs []model.Difference, temporary bool) []model.Difference {
	var out []model.Difference
	for _, d := range append(append([]model.Difference{}, bookDiffs...), bankDiffs...) {
		if d.Category.Temporary == temporary {
			out = append(out, d)
		}
	}
	return out
}
