// Package statement reconstructs the reconciliation walk: starting
// from the bank's closing balance and applying every categorized
// difference in a fixed order, it arrives at a value meant to equal
// the book's closing balance. Whatever gap remains is the unexplained
// residual, surfaced rather than forced to zero.
package statement

import (
	"sort"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Franco-Arce/Tuchi/internal/categorizer"
	"github.com/Franco-Arce/Tuchi/internal/model"
)

// LineKind distinguishes the row flavors of the statement.
type LineKind string

const (
	LineBalance     LineKind = "balance"     // opening/closing balance rows
	LineHeading     LineKind = "heading"     // category heading with +/- sign
	LineDetail      LineKind = "detail"      // itemized or aggregated adjustment
	LinePlaceholder LineKind = "placeholder" // structurally expected, zero amount
)

// Line is one row of the reconciliation statement. Amount is the
// signed delta applied to the running balance; Balance is the running
// balance after applying it.
type Line struct {
	Kind    LineKind
	Sign    string // "+" or "-" on headings and placeholders
	Concept string // heading/balance label
	Detail  string // itemized description, truncated to 80 chars
	Amount  decimal.Decimal
	Balance decimal.Decimal

	// RequiresEntry mirrors the category of the difference behind a
	// detail line: true for adjustments needing an accounting entry.
	RequiresEntry bool
}

// Statement is the ordered walk plus the balances it connects.
type Statement struct {
	Title       string
	Lines       []Line
	Opening     decimal.Decimal // bank's closing balance
	Closing     decimal.Decimal // running balance after all lines
	BookBalance decimal.Decimal // book's independently computed closing
	Residual    decimal.Decimal // BookBalance - Closing
}

// Labels for the structural sections of the statement.
const (
	conceptBankBalance     = "Saldo final Banco"
	conceptBookBalance     = "Saldo final Libro"
	conceptOmittedCredits  = "Notas de crédito omitidas por la empresa"
	conceptOmittedDebits   = "Notas de débito omitidas por la empresa"
	conceptOmittedChecks   = "Cheques omitidos o registrados de menos"
	conceptOverDeposits    = "Depósitos registrados de más"
	conceptPendingChecks   = "Cheques pendientes"
	conceptOverChecks      = "Cheques registrados de más"
	maxDetailLen           = 80
)

type builder struct {
	lines   []Line
	balance decimal.Decimal
}

// Build assembles the statement from the categorized differences.
// opening is the bank's closing balance, bookBalance the sum of book
// net amounts, title the period heading.
func Build(title string, bookDiffs, bankDiffs []model.Difference, opening, bookBalance decimal.Decimal) *Statement {
	b := &builder{balance: opening}
	b.balanceLine(conceptBankBalance)

	// Temporal differences, book side: deposits in transit first.
	deposits, otherTemporalBook := splitDeposits(temporalOnly(bookDiffs))
	if len(deposits) > 0 {
		b.heading("+", categorizer.SubcategoryDepositsInTransit)
		for _, d := range deposits {
			b.detail(d.Description, d.Amount, false)
		}
	}
	for _, group := range groupBySubcategory(otherTemporalBook) {
		b.heading("+", group.subcategory)
		for _, d := range group.diffs {
			b.detail(d.Description, d.Amount, false)
		}
	}

	// Temporal differences, bank side.
	for _, group := range groupBySubcategory(temporalOnly(bankDiffs)) {
		b.heading("+", group.subcategory)
		for _, d := range group.diffs {
			b.detail(d.Description, d.Amount, false)
		}
	}

	// Permanent differences, bank side: credits itemized.
	permBank := permanentOnly(bankDiffs)
	credits := filterSign(permBank, true)
	if len(credits) > 0 {
		b.heading("+", conceptOmittedCredits)
		for _, group := range groupBySubcategory(credits) {
			for _, d := range group.diffs {
				b.detail(d.Description, d.Amount, true)
			}
		}
	}

	// Debits aggregated to one line per subcategory.
	debits := filterSign(permBank, false)
	if len(debits) > 0 {
		b.heading("+", conceptOmittedDebits)
		for _, group := range groupBySubcategory(debits) {
			total := decimal.Zero
			for _, d := range group.diffs {
				total = total.Add(d.Amount)
			}
			b.detail(group.subcategory, total, true)
		}
	}

	b.placeholder("+", conceptOmittedChecks)
	b.placeholder("+", conceptOverDeposits)

	// Pending checks: unmatched bank debits that carry a voucher.
	b.heading("-", conceptPendingChecks)
	for _, d := range bankDiffs {
		if d.Voucher != "" && d.Amount.IsNegative() {
			b.detail("Cheque "+d.Voucher, d.Amount, false)
		}
	}

	b.placeholder("-", conceptOverChecks)

	b.balanceLine(conceptBookBalance)

	return &Statement{
		Title:       title,
		Lines:       b.lines,
		Opening:     opening,
		Closing:     b.balance,
		BookBalance: bookBalance,
		Residual:    bookBalance.Sub(b.balance),
	}
}

func (b *builder) balanceLine(concept string) {
	b.lines = append(b.lines, Line{Kind: LineBalance, Concept: concept, Balance: b.balance})
}

func (b *builder) heading(sign, concept string) {
	b.lines = append(b.lines, Line{Kind: LineHeading, Sign: sign, Concept: concept, Balance: b.balance})
}

func (b *builder) placeholder(sign, concept string) {
	b.lines = append(b.lines, Line{Kind: LinePlaceholder, Sign: sign, Concept: concept, Balance: b.balance})
}

func (b *builder) detail(desc string, amount decimal.Decimal, requiresEntry bool) {
	b.balance = b.balance.Add(amount)
	b.lines = append(b.lines, Line{
		Kind:          LineDetail,
		Detail:        truncate(desc, maxDetailLen),
		Amount:        amount,
		Balance:       b.balance,
		RequiresEntry: requiresEntry,
	})
}

// truncate cuts on runes: descriptions carry accented Spanish text,
// and a byte slice could split a character at the boundary.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}

func temporalOnly(diffs []model.Difference) []model.Difference {
	var out []model.Difference
	for _, d := range diffs {
		if d.Category.Temporary {
			out = append(out, d)
		}
	}
	return out
}

func permanentOnly(diffs []model.Difference) []model.Difference {
	var out []model.Difference
	for _, d := range diffs {
		if !d.Category.Temporary {
			out = append(out, d)
		}
	}
	return out
}

func splitDeposits(diffs []model.Difference) (deposits, rest []model.Difference) {
	for _, d := range diffs {
		if d.Category.Subcategory == categorizer.SubcategoryDepositsInTransit {
			deposits = append(deposits, d)
		} else {
			rest = append(rest, d)
		}
	}
	return deposits, rest
}

func filterSign(diffs []model.Difference, positive bool) []model.Difference {
	var out []model.Difference
	for _, d := range diffs {
		if positive && d.Amount.IsPositive() {
			out = append(out, d)
		}
		if !positive && d.Amount.IsNegative() {
			out = append(out, d)
		}
	}
	return out
}

type subcategoryGroup struct {
	subcategory string
	diffs       []model.Difference
}

// groupBySubcategory groups diffs by subcategory label, groups ordered
// alphabetically and rows kept in input order, so a re-run produces an
// identical statement.
func groupBySubcategory(diffs []model.Difference) []subcategoryGroup {
	byLabel := make(map[string][]model.Difference)
	for _, d := range diffs {
		byLabel[d.Category.Subcategory] = append(byLabel[d.Category.Subcategory], d)
	}
	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	groups := make([]subcategoryGroup, 0, len(labels))
	for _, label := range labels {
		groups = append(groups, subcategoryGroup{subcategory: label, diffs: byLabel[label]})
	}
	return groups
}
