package matcher

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Franco-Arce/Tuchi/internal/model"
)

// DefaultTolerance returns the conventional $1.00 amount tolerance.
func DefaultTolerance() decimal.Decimal {
	return decimal.New(100, -2)
}

// ValidateChecks runs the explode-and-group-validate discipline: a
// left join that keeps every book entry, summing the bank amounts of
// all its identifiers and comparing the total against the entry's own
// amount within tolerance. Runs share no state; callers may validate
// different input pairs concurrently.
func ValidateChecks(books []model.BookEntry, banks []model.BankEntry, tolerance decimal.Decimal) []model.CheckResult {
	idx := voucherIndex(banks)
	amounts := make(map[int]decimal.Decimal, len(banks))
	for _, b := range banks {
		amounts[b.Row] = b.Amount
	}

	results := make([]model.CheckResult, 0, len(books))
	for _, book := range books {
		res := model.CheckResult{Entry: book, BankTotal: decimal.Zero}

		for _, id := range book.Identifiers {
			id = strings.TrimSpace(id)
			link := model.MatchLink{BookRow: book.Row, Identifier: id, BankRow: model.NoRow}
			for _, bankRow := range idx[id] {
				link.BankRow = bankRow
				link.Matched = true
				res.BankTotal = res.BankTotal.Add(amounts[bankRow])
			}
			res.Links = append(res.Links, link)
		}

		res.Difference = book.Amount.Sub(res.BankTotal)
		res.Status = checkStatus(book, res, tolerance)
		results = append(results, res)
	}
	return results
}

func checkStatus(book model.BookEntry, res model.CheckResult, tolerance decimal.Decimal) model.CheckStatus {
	switch {
	case len(book.Identifiers) == 0:
		return model.StatusNoIdentifiers
	case res.Difference.Abs().LessThanOrEqual(tolerance):
		return model.StatusReconciled
	case res.BankTotal.IsZero():
		return model.StatusNotFound
	default:
		return model.StatusDiscrepancy
	}
}
