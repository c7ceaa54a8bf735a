// Package loader normalizes the two heterogeneous spreadsheet sources
// onto the canonical book/bank entry schema. Column names are resolved
// by substring heuristics, amounts and dates are parsed leniently, and
// only a genuinely absent required column aborts the run.
package loader

import (
	"strings"
	"time"

	"github.com/Franco-Arce/Tuchi/internal/amount"
	"github.com/Franco-Arce/Tuchi/internal/extract"
	"github.com/Franco-Arce/Tuchi/internal/model"
	"github.com/shopspring/decimal"
)

// Cell is a raw sheet cell. Numeric cells keep machine formatting
// ("-1234.56"); text cells may carry locale formatting ("1.234,56").
type Cell struct {
	Value   string
	Numeric bool
}

// Conventional header row offsets: book templates carry a title row
// above the headers, bank statements start with them.
const (
	DefaultBookHeaderRow = 1
	DefaultBankHeaderRow = 0
)

// Book normalizes the accounting book sheet. headerRow is the index of
// the header row; data starts on the next row. Requires the credit,
// debit and concept columns.
func Book(rows [][]Cell, headerRow int) ([]model.BookEntry, error) {
	headers, data := splitSheet(rows, headerRow)
	cols := ResolveBookColumns(headers)
	err := cols.require(model.SourceBook, headers, map[string]int{
		"ingreso":  cols.Credit,
		"egreso":   cols.Debit,
		"concepto": cols.Description,
	})
	if err != nil {
		return nil, err
	}

	var entries []model.BookEntry
	for i, row := range data {
		concept := cellString(row, cols.Description)
		entries = append(entries, model.BookEntry{
			Row:         i,
			Date:        parseDate(cellAt(row, cols.Date)),
			Concept:     concept,
			Amount:      cellAmount(row, cols.Credit).Sub(cellAmount(row, cols.Debit)),
			Identifiers: extract.Identifiers(concept),
		})
	}
	return entries, nil
}

// Bank normalizes the bank statement sheet. Requires the voucher
// column; credit, debit, date and balance default to zero/absent.
func Bank(rows [][]Cell, headerRow int) ([]model.BankEntry, error) {
	headers, data := splitSheet(rows, headerRow)
	cols := ResolveBankColumns(headers)
	err := cols.require(model.SourceBank, headers, map[string]int{
		"numero de comprobante": cols.Voucher,
	})
	if err != nil {
		return nil, err
	}

	var entries []model.BankEntry
	for i, row := range data {
		e := model.BankEntry{
			Row:         i,
			Date:        parseDate(cellAt(row, cols.Date)),
			Description: cellString(row, cols.Description),
			Voucher:     trimVoucher(cellString(row, cols.Voucher)),
			Amount:      cellAmount(row, cols.Credit).Sub(cellAmount(row, cols.Debit)),
		}
		if cols.Balance != ColNone {
			if c := cellAt(row, cols.Balance); c.Value != "" {
				e.Balance = parseCellAmount(c)
				e.HasBalance = true
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func splitSheet(rows [][]Cell, headerRow int) (headers []string, data [][]Cell) {
	if headerRow >= len(rows) {
		return nil, nil
	}
	for _, c := range rows[headerRow] {
		headers = append(headers, c.Value)
	}
	return headers, rows[headerRow+1:]
}

func cellAt(row []Cell, col int) Cell {
	if col == ColNone || col >= len(row) {
		return Cell{}
	}
	return row[col]
}

func cellString(row []Cell, col int) string {
	return cellAt(row, col).Value
}

func cellAmount(row []Cell, col int) decimal.Decimal {
	if col == ColNone {
		return decimal.Zero
	}
	return parseCellAmount(cellAt(row, col))
}

func parseCellAmount(c Cell) decimal.Decimal {
	if c.Numeric {
		return amount.ParseNumber(c.Value)
	}
	return amount.Parse(c.Value)
}

func trimVoucher(v string) string {
	v = strings.TrimSpace(v)
	if v == "nan" {
		return ""
	}
	return v
}

// Date layouts seen across bank and book templates, tried in order.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
	"02-01-2006",
	"02/01/06",
	"2006-01-02 15:04:05",
	"01-02-06", // excelize default short date rendering
}

// parseDate parses a cell leniently; unparsable dates become the zero
// time. Numeric cells hold an Excel serial day count.
func parseDate(c Cell) time.Time {
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return time.Time{}
	}
	if c.Numeric {
		if d := amount.ParseNumber(v); !d.IsZero() {
			return excelEpoch.Add(time.Duration(d.InexactFloat64() * 24 * float64(time.Hour)))
		}
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Excel serial day 0 is 1899-12-30 (the 1900 leap-year bug included).
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
