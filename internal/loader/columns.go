package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Franco-Arce/Tuchi/internal/model"
)

// ColNone marks an absent column.
const ColNone = -1

// Columns maps canonical fields to header offsets. Absent optional
// columns are ColNone.
type Columns struct {
	Credit      int
	Debit       int
	Voucher     int
	Date        int
	Description int
	Balance     int
}

// SchemaError reports required columns that could not be resolved,
// together with the headers that were actually detected so the caller
// can show the user what the upload contained.
type SchemaError struct {
	Source   model.Source
	Missing  []string
	Detected []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns %s (detected: %s)",
		e.Source, strings.Join(e.Missing, ", "), strings.Join(e.Detected, ", "))
}

// Header name fragments recognized per canonical field. Spreadsheets
// arrive with inconsistent accents and encodings ("Créditos",
// "Creditos", "Crditos"), so matching is case-insensitive substring
// over every known variant.
var (
	bookCreditVariants = []string{"ingreso"}
	bookDebitVariants  = []string{"egreso"}
	bookDateVariants   = []string{"fecha"}
	bookDescVariants   = []string{"concepto"}

	bankCreditVariants  = []string{"créditos", "creditos", "crditos"}
	bankDebitVariants   = []string{"débitos", "debitos", "dbitos"}
	bankVoucherVariants = []string{"numero de comprobante", "número de comprobante"}
	bankDateVariants    = []string{"fecha"}
	bankDescVariants    = []string{"descripci"}
	bankBalanceVariants = []string{"saldo"}
)

func matchHeader(header string, variants []string) bool {
	h := strings.ToLower(strings.TrimSpace(header))
	for _, v := range variants {
		if strings.Contains(h, v) {
			return true
		}
	}
	return false
}

// ResolveBookColumns maps book sheet headers onto canonical fields.
func ResolveBookColumns(headers []string) Columns {
	cols := emptyColumns()
	for i, h := range headers {
		switch {
		case cols.Credit == ColNone && matchHeader(h, bookCreditVariants):
			cols.Credit = i
		case cols.Debit == ColNone && matchHeader(h, bookDebitVariants):
			cols.Debit = i
		case cols.Description == ColNone && matchHeader(h, bookDescVariants):
			cols.Description = i
		case cols.Date == ColNone && matchHeader(h, bookDateVariants):
			cols.Date = i
		}
	}
	return cols
}

// ResolveBankColumns maps bank statement headers onto canonical
// fields. The first header containing "fecha" wins the date slot;
// voucher and amount variants are checked before the date so that
// headers like "Fecha de comprobante" cannot shadow them.
func ResolveBankColumns(headers []string) Columns {
	cols := emptyColumns()
	for i, h := range headers {
		switch {
		case cols.Credit == ColNone && matchHeader(h, bankCreditVariants):
			cols.Credit = i
		case cols.Debit == ColNone && matchHeader(h, bankDebitVariants):
			cols.Debit = i
		case cols.Voucher == ColNone && matchHeader(h, bankVoucherVariants):
			cols.Voucher = i
		case cols.Description == ColNone && matchHeader(h, bankDescVariants):
			cols.Description = i
		case cols.Balance == ColNone && matchHeader(h, bankBalanceVariants):
			cols.Balance = i
		case cols.Date == ColNone && matchHeader(h, bankDateVariants):
			cols.Date = i
		}
	}
	return cols
}

func emptyColumns() Columns {
	return Columns{
		Credit:      ColNone,
		Debit:       ColNone,
		Voucher:     ColNone,
		Date:        ColNone,
		Description: ColNone,
		Balance:     ColNone,
	}
}

// require builds a SchemaError when any of the named fields is absent.
func (c Columns) require(source model.Source, headers []string, fields map[string]int) error {
	var missing []string
	for name, idx := range fields {
		if idx == ColNone {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	detected := make([]string, 0, len(headers))
	for _, h := range headers {
		if s := strings.TrimSpace(h); s != "" {
			detected = append(detected, s)
		}
	}
	return &SchemaError{Source: source, Missing: missing, Detected: detected}
}
