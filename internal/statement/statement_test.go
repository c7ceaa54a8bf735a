package statement

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Franco-Arce/Tuchi/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func diff(source model.Source, desc, amount string, cat model.Category) model.Difference {
	return model.Difference{Source: source, Description: desc, Amount: dec(amount), Category: cat}
}

func temporal(sub string) model.Category {
	return model.Category{Kind: model.KindTemporal, Subcategory: sub, Temporary: true}
}

func permanente(sub string) model.Category {
	return model.Category{Kind: model.KindPermanente, Subcategory: sub, RequiresEntry: true}
}

func TestBuildOrderAndBalances(t *testing.T) {
	bookDiffs := []model.Difference{
		diff(model.SourceBook, "Deposito cliente X", "500", temporal("Depósitos en tránsito")),
		diff(model.SourceBook, "Transferencia pendiente", "200", temporal("Transferencias transitorias")),
	}
	bankDiffs := []model.Difference{
		diff(model.SourceBank, "Acreditacion prisma", "300", temporal("Acreditaciones tarjetas")),
		diff(model.SourceBank, "Comision mantenimiento cuenta", "-50", permanente("Comisiones")),
		diff(model.SourceBank, "Interes plazo fijo", "120", permanente("Notas de débito/crédito omitidas")),
	}
	bankDiffs[1].Voucher = ""

	st := Build("Conciliación Bancaria - enero 2026", bookDiffs, bankDiffs, dec("10000"), dec("11070"))

	// 10000 +500 +200 +300 +120 -50 = 11070
	assert.Equal(t, "11070", st.Closing.String())
	assert.True(t, st.Residual.IsZero())

	// Section order: deposits, other temporal book, temporal bank,
	// permanent credits, permanent debits, placeholders, pending, over.
	var headings []string
	for _, l := range st.Lines {
		if l.Kind == LineHeading || l.Kind == LinePlaceholder {
			headings = append(headings, l.Concept)
		}
	}
	assert.Equal(t, []string{
		"Depósitos en tránsito",
		"Transferencias transitorias",
		"Acreditaciones tarjetas",
		"Notas de crédito omitidas por la empresa",
		"Notas de débito omitidas por la empresa",
		"Cheques omitidos o registrados de menos",
		"Depósitos registrados de más",
		"Cheques pendientes",
		"Cheques registrados de más",
	}, headings)

	first, last := st.Lines[0], st.Lines[len(st.Lines)-1]
	assert.Equal(t, LineBalance, first.Kind)
	assert.Equal(t, "10000", first.Balance.String())
	assert.Equal(t, LineBalance, last.Kind)
	assert.Equal(t, "11070", last.Balance.String())
}

func TestConservation(t *testing.T) {
	bookDiffs := []model.Difference{
		diff(model.SourceBook, "Deposito A", "1234.56", temporal("Depósitos en tránsito")),
		diff(model.SourceBook, "Deposito B", "0.01", temporal("Depósitos en tránsito")),
	}
	bankDiffs := []model.Difference{
		diff(model.SourceBank, "Comision", "-33.33", permanente("Comisiones")),
		diff(model.SourceBank, "Impuesto ley 25413", "-66.67", permanente("Impuestos y percepciones")),
		diff(model.SourceBank, "NC proveedor", "10", permanente("Notas de débito/crédito omitidas")),
	}
	pending := diff(model.SourceBank, "Cheque 42", "-700", permanente("Notas de débito/crédito omitidas"))
	pending.Voucher = "42"
	bankDiffs = append(bankDiffs, pending)

	st := Build("", bookDiffs, bankDiffs, dec("5000"), dec("9999"))

	// Opening plus every signed line amount equals the closing balance
	// exactly; no line dropped or double-counted.
	total := st.Opening
	for _, l := range st.Lines {
		total = total.Add(l.Amount)
	}
	assert.True(t, total.Equal(st.Closing), "got %s want %s", total, st.Closing)
	assert.Equal(t, st.BookBalance.Sub(st.Closing).String(), st.Residual.String())
}

func TestPendingChecksItemized(t *testing.T) {
	check := diff(model.SourceBank, "Debito cheque", "-250", permanente("Notas de débito/crédito omitidas"))
	check.Voucher = "3042"
	noVoucher := diff(model.SourceBank, "Debito varios", "-80", permanente("Comisiones"))

	st := Build("", nil, []model.Difference{check, noVoucher}, dec("1000"), dec("670"))

	var pendingDetails []Line
	inPending := false
	for _, l := range st.Lines {
		switch {
		case l.Kind == LineHeading && l.Concept == "Cheques pendientes":
			inPending = true
		case inPending && l.Kind == LineDetail:
			pendingDetails = append(pendingDetails, l)
		case inPending && l.Kind != LineDetail:
			inPending = false
		}
	}
	require.Len(t, pendingDetails, 1)
	assert.Equal(t, "Cheque 3042", pendingDetails[0].Detail)
	assert.Equal(t, "-250", pendingDetails[0].Amount.String())
}

func TestDebitAggregationPerSubcategory(t *testing.T) {
	// Input order deliberately not alphabetical: groups must come out
	// sorted by label no matter how rows arrive.
	bankDiffs := []model.Difference{
		diff(model.SourceBank, "Imp debitos", "-5", permanente("Impuestos y percepciones")),
		diff(model.SourceBank, "Comision A", "-10", permanente("Comisiones")),
		diff(model.SourceBank, "Comision B", "-15", permanente("Comisiones")),
	}

	st := Build("", nil, bankDiffs, dec("100"), dec("70"))

	var debitDetails []Line
	inDebits := false
	for _, l := range st.Lines {
		switch {
		case l.Kind == LineHeading && l.Concept == "Notas de débito omitidas por la empresa":
			inDebits = true
		case inDebits && l.Kind == LineDetail:
			debitDetails = append(debitDetails, l)
		case inDebits && l.Kind != LineDetail:
			inDebits = false
		}
	}
	require.Len(t, debitDetails, 2)
	assert.Equal(t, "Comisiones", debitDetails[0].Detail)
	assert.Equal(t, "-25", debitDetails[0].Amount.String())
	assert.Equal(t, "Impuestos y percepciones", debitDetails[1].Detail)
	assert.Equal(t, "-5", debitDetails[1].Amount.String())
}

func TestDetailTruncation(t *testing.T) {
	// An accented rune straddling the cutoff must not be split.
	long := strings.Repeat("x", 79) + "ó" + strings.Repeat("y", 40)
	bookDiffs := []model.Difference{
		diff(model.SourceBook, long, "10", temporal("Depósitos en tránsito")),
	}

	st := Build("", bookDiffs, nil, dec("0"), dec("10"))
	var details int
	for _, l := range st.Lines {
		if l.Kind == LineDetail {
			details++
			assert.True(t, utf8.ValidString(l.Detail))
			assert.Equal(t, 80, utf8.RuneCountInString(l.Detail))
			assert.Equal(t, strings.Repeat("x", 79)+"ó", l.Detail)
		}
	}
	require.Equal(t, 1, details)
}

func TestShortDetailKeptWhole(t *testing.T) {
	bookDiffs := []model.Difference{
		diff(model.SourceBook, "Depósito cliente", "10", temporal("Depósitos en tránsito")),
	}

	st := Build("", bookDiffs, nil, dec("0"), dec("10"))
	for _, l := range st.Lines {
		if l.Kind == LineDetail {
			assert.Equal(t, "Depósito cliente", l.Detail)
		}
	}
}

func TestEmptyRun(t *testing.T) {
	st := Build("", nil, nil, dec("500"), dec("500"))
	assert.Equal(t, "500", st.Closing.String())
	assert.True(t, st.Residual.IsZero())
	// Placeholders and balance rows are always present.
	assert.Len(t, st.Lines, 6)
}
