package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Franco-Arce/Tuchi/internal/model"
)

func text(vals ...string) []Cell {
	row := make([]Cell, len(vals))
	for i, v := range vals {
		row[i] = Cell{Value: v}
	}
	return row
}

func TestResolveBookColumns(t *testing.T) {
	cols := ResolveBookColumns([]string{"Fecha Pago ", "Concepto", "Ingreso", "Egreso"})
	assert.Equal(t, 0, cols.Date)
	assert.Equal(t, 1, cols.Description)
	assert.Equal(t, 2, cols.Credit)
	assert.Equal(t, 3, cols.Debit)
	assert.Equal(t, ColNone, cols.Voucher)
}

func TestResolveBankColumnsVariants(t *testing.T) {
	// Mis-encoded accents must still resolve.
	cols := ResolveBankColumns([]string{"Fecha", "Descripcin", "Crditos", "Dbitos", "Numero de Comprobante", "Saldo"})
	assert.Equal(t, 0, cols.Date)
	assert.Equal(t, 1, cols.Description)
	assert.Equal(t, 2, cols.Credit)
	assert.Equal(t, 3, cols.Debit)
	assert.Equal(t, 4, cols.Voucher)
	assert.Equal(t, 5, cols.Balance)
}

func TestResolveBankColumnsFirstFechaWins(t *testing.T) {
	cols := ResolveBankColumns([]string{"Fecha Valor", "Fecha", "Número de Comprobante"})
	assert.Equal(t, 0, cols.Date)
	assert.Equal(t, 2, cols.Voucher)
}

func TestBook(t *testing.T) {
	rows := [][]Cell{
		text("Libro Banco Enero"),
		text("Fecha Pago ", "Concepto", "Ingreso", "Egreso"),
		text("05/01/2026", "Cheques de terceros (100)(200)", "1.000,00", ""),
		text("07/01/2026", "Deposito cliente X", "500,00", ""),
		text("bad-date", "Pago proveedor", "", "250,50"),
	}

	entries, err := Book(rows, DefaultBookHeaderRow)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 0, entries[0].Row)
	assert.Equal(t, "1000", entries[0].Amount.String())
	assert.Equal(t, []string{"100", "200"}, entries[0].Identifiers)
	assert.Equal(t, 2026, entries[0].Date.Year())

	assert.Empty(t, entries[1].Identifiers)
	assert.Equal(t, "500", entries[1].Amount.String())

	// Malformed date becomes the zero time, the row survives.
	assert.True(t, entries[2].Date.IsZero())
	assert.Equal(t, "-250.5", entries[2].Amount.String())
}

func TestBookMissingColumns(t *testing.T) {
	rows := [][]Cell{
		text("titulo"),
		text("Fecha Pago ", "Detalle", "Ingreso"),
	}
	_, err := Book(rows, DefaultBookHeaderRow)
	require.Error(t, err)

	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, model.SourceBook, serr.Source)
	assert.Equal(t, []string{"concepto", "egreso"}, serr.Missing)
	assert.Contains(t, serr.Detected, "Detalle")
}

func TestBank(t *testing.T) {
	rows := [][]Cell{
		text("Fecha", "Descripción", "Créditos", "Débitos", "Numero de Comprobante", "Saldo"),
		text("03/01/2026", "Deposito cheque", "400,00", "", " 100 ", "400,00"),
		text("04/01/2026", "Comision mantenimiento cuenta", "", "50,00", "", "350,00"),
	}

	entries, err := Bank(rows, DefaultBankHeaderRow)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "100", entries[0].Voucher, "voucher must be trimmed")
	assert.Equal(t, "400", entries[0].Amount.String())
	assert.True(t, entries[0].HasBalance)
	assert.Equal(t, "400", entries[0].Balance.String())

	assert.Equal(t, "", entries[1].Voucher)
	assert.Equal(t, "-50", entries[1].Amount.String())
	assert.Equal(t, "350", entries[1].Balance.String())
}

func TestBankMissingVoucher(t *testing.T) {
	rows := [][]Cell{
		text("Fecha", "Descripción", "Créditos"),
	}
	_, err := Bank(rows, DefaultBankHeaderRow)
	var serr *SchemaError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, []string{"numero de comprobante"}, serr.Missing)
}

func TestNumericCells(t *testing.T) {
	rows := [][]Cell{
		text("Fecha", "Descripción", "Créditos", "Débitos", "Numero de Comprobante"),
		{
			{Value: "46026", Numeric: true}, // excel serial for 2026-01-04
			{Value: "Acreditacion"},
			{Value: "1234.56", Numeric: true},
			{Value: ""},
			{Value: "777", Numeric: true},
		},
	}

	entries, err := Bank(rows, DefaultBankHeaderRow)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1234.56", entries[0].Amount.String())
	assert.Equal(t, "777", entries[0].Voucher)
	assert.Equal(t, 2026, entries[0].Date.Year())
}
