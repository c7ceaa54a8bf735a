package categorizer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Franco-Arce/Tuchi/internal/model"
)

func TestCategorizeKeywords(t *testing.T) {
	c := New(nil, nil)

	tests := []struct {
		desc    string
		source  model.Source
		kind    model.CategoryKind
		subcat  string
		entry   bool
	}{
		{"Comision mantenimiento cuenta", model.SourceBank, model.KindPermanente, "Comisiones", true},
		{"Imp. Ley 25413 debito", model.SourceBank, model.KindPermanente, "Impuestos y percepciones", true},
		{"Percepcion ing. bruto", model.SourceBank, model.KindPermanente, "Impuestos y percepciones", true},
		{"DEBITO AUTOMATICO seguro", model.SourceBank, model.KindPermanente, "Débito automático", true},
		{"Cheque devuelto sin fondos", model.SourceBank, model.KindPermanente, "Cheques rechazados", true},
		{"Acreditacion prisma", model.SourceBank, model.KindTemporal, "Acreditaciones en tránsito", false},
		{"Pago con tarjeta", model.SourceBank, model.KindTemporal, "Acreditaciones tarjetas", false},
		{"Deposito en transito sucursal", model.SourceBook, model.KindTemporal, "Depósitos en tránsito", false},
	}

	for _, tt := range tests {
		got := c.Categorize(tt.desc, tt.source)
		assert.Equal(t, tt.kind, got.Kind, tt.desc)
		assert.Equal(t, tt.subcat, got.Subcategory, tt.desc)
		assert.Equal(t, tt.entry, got.RequiresEntry, tt.desc)
		assert.Equal(t, !tt.entry, got.Temporary, tt.desc)
	}
}

func TestPermanentBeatsTemporal(t *testing.T) {
	c := New(nil, nil)

	// Contains both "transferencia" (temporal) and "comision"
	// (permanent); permanent table runs first.
	got := c.Categorize("Comision por transferencia", model.SourceBank)
	assert.Equal(t, model.KindPermanente, got.Kind)
	assert.Equal(t, "Comisiones", got.Subcategory)
}

func TestSourceDefaults(t *testing.T) {
	c := New(nil, nil)

	bookSide := c.Categorize("Deposito cliente X", model.SourceBook)
	assert.Equal(t, model.KindTemporal, bookSide.Kind)
	assert.Equal(t, SubcategoryDepositsInTransit, bookSide.Subcategory)
	assert.False(t, bookSide.RequiresEntry)

	bankSide := c.Categorize("Movimiento desconocido", model.SourceBank)
	assert.Equal(t, model.KindPermanente, bankSide.Kind)
	assert.Equal(t, SubcategoryOmittedNotes, bankSide.Subcategory)
	assert.True(t, bankSide.RequiresEntry)
}

func TestDeterministicAcrossRuns(t *testing.T) {
	c := New(nil, nil)
	first := c.Categorize("Impuesto debito automatico", model.SourceBank)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, c.Categorize("Impuesto debito automatico", model.SourceBank))
	}
	// "impuesto" precedes "debito autom" in the table.
	assert.Equal(t, "Impuestos y percepciones", first.Subcategory)
}

func TestExtraRulesAppendAfterDefaults(t *testing.T) {
	c := New([]Rule{{"leasing", "Leasing"}}, nil)

	assert.Equal(t, "Leasing", c.Categorize("Cuota leasing maquinaria", model.SourceBank).Subcategory)
	// Built-ins still win when both match.
	assert.Equal(t, "Comisiones", c.Categorize("comision leasing", model.SourceBank).Subcategory)
}

func TestClassifyBankCarriesFields(t *testing.T) {
	c := New(nil, nil)
	d := c.ClassifyBank(model.BankEntry{Row: 7, Description: "Comision mantenimiento cuenta", Voucher: "99"})
	assert.Equal(t, model.SourceBank, d.Source)
	assert.Equal(t, 7, d.Row)
	assert.Equal(t, "99", d.Voucher)
	assert.Equal(t, model.KindPermanente, d.Category.Kind)
}
