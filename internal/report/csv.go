package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Franco-Arce/Tuchi/internal/model"
)

// DifferencesHeader is the CSV header for difference listings.
const DifferencesHeader = "origen,fecha,concepto,monto,categoria,subcategoria,requiere_asiento"

const (
	diffNumFields = 7
	colOrigen     = 0
	colFecha      = 1
	colConcepto   = 2
	colMonto      = 3
	colCategoria  = 4
	colSubcat     = 5
	colAsiento    = 6
)

// WriteDifferences writes categorized differences as CSV (with header).
func WriteDifferences(w io.Writer, diffs []model.Difference) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(DifferencesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, d := range diffs {
		if err := cw.Write(MarshalDifference(d)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalDifference converts a Difference to a CSV row.
func MarshalDifference(d model.Difference) []string {
	row := make([]string, diffNumFields)
	row[colOrigen] = string(d.Source)
	row[colFecha] = day(d.Date)
	row[colConcepto] = d.Description
	row[colMonto] = d.Amount.StringFixed(2)
	row[colCategoria] = string(d.Category.Kind)
	row[colSubcat] = d.Category.Subcategory
	row[colAsiento] = strconv.FormatBool(d.Category.RequiresEntry)
	return row
}

// ChecksHeader is the CSV header for check-validation listings.
const ChecksHeader = "fecha,concepto,monto_libro,cheques,monto_banco,diferencia,estado"

// WriteCheckResults writes variant-b results as CSV (with header).
func WriteCheckResults(w io.Writer, results []model.CheckResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ChecksHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range results {
		row := []string{
			day(r.Entry.Date),
			r.Entry.Concept,
			r.Entry.Amount.StringFixed(2),
			strings.Join(r.Entry.Identifiers, ";"),
			r.BankTotal.StringFixed(2),
			r.Difference.StringFixed(2),
			string(r.Status),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
