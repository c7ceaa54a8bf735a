// Package engine runs a full reconciliation over two normalized
// record sets. It holds no state between runs; separate runs may
// proceed concurrently.
package engine

import (
	"github.com/shopspring/decimal"

	"github.com/Franco-Arce/Tuchi/internal/categorizer"
	"github.com/Franco-Arce/Tuchi/internal/matcher"
	"github.com/Franco-Arce/Tuchi/internal/model"
	"github.com/Franco-Arce/Tuchi/internal/statement"
	"github.com/Franco-Arce/Tuchi/internal/summary"
)

// ReconcileResult bundles everything a variant-a report needs.
type ReconcileResult struct {
	Match     *matcher.Result
	BookDiffs []model.Difference
	BankDiffs []model.Difference
	Statement *statement.Statement
	Summary   summary.Reconciliation
}

// Reconcile matches the two sets, categorizes the remainder and walks
// the running balance. cat may be nil for the built-in rule tables.
func Reconcile(books []model.BookEntry, banks []model.BankEntry, cat *categorizer.Categorizer) *ReconcileResult {
	if cat == nil {
		cat = categorizer.New(nil, nil)
	}

	res := matcher.Match(books, banks)

	var bookDiffs, bankDiffs []model.Difference
	for _, b := range res.UnmatchedBooks(books) {
		bookDiffs = append(bookDiffs, cat.ClassifyBook(b))
	}
	for _, b := range res.UnmatchedBanks(banks) {
		bankDiffs = append(bankDiffs, cat.ClassifyBank(b))
	}

	bankEnding := bankEndingBalance(banks)
	bookEnding := bookEndingBalance(books)

	st := statement.Build(statementTitle(books), bookDiffs, bankDiffs, bankEnding, bookEnding)

	sum := summary.Aggregate(summary.MatchStats{
		MatchedEntries:    res.MatchedBookEntries(),
		MatchedLinks:      res.MatchedLinks(),
		SharedBankMatches: res.SharedBankMatches,
	}, bookDiffs, bankDiffs, bankEnding, bookEnding, st.Residual)

	return &ReconcileResult{
		Match:     res,
		BookDiffs: bookDiffs,
		BankDiffs: bankDiffs,
		Statement: st,
		Summary:   sum,
	}
}

// ChecksResult bundles a variant-b run.
type ChecksResult struct {
	Results []model.CheckResult
	Summary summary.Checks
}

// ValidateChecks annotates every book entry with its bank total and
// reconciliation status. tolerance bounds the amount difference still
// treated as reconciled; matcher.DefaultTolerance() gives the
// conventional $1.00.
func ValidateChecks(books []model.BookEntry, banks []model.BankEntry, tolerance decimal.Decimal) *ChecksResult {
	results := matcher.ValidateChecks(books, banks, tolerance)
	return &ChecksResult{
		Results: results,
		Summary: summary.AggregateChecks(results),
	}
}

// bankEndingBalance is the bank's own stated closing balance when
// present (the last row carrying one), otherwise the sum of its net
// movements.
func bankEndingBalance(banks []model.BankEntry) decimal.Decimal {
	for i := len(banks) - 1; i >= 0; i-- {
		if banks[i].HasBalance {
			return banks[i].Balance
		}
	}
	total := decimal.Zero
	for _, b := range banks {
		total = total.Add(b.Amount)
	}
	return total
}

func bookEndingBalance(books []model.BookEntry) decimal.Decimal {
	total := decimal.Zero
	for _, b := range books {
		total = total.Add(b.Amount)
	}
	return total
}

// statementTitle derives the period heading from the first dated book
// entry.
func statementTitle(books []model.BookEntry) string {
	for _, b := range books {
		if !b.Date.IsZero() {
			return "Conciliación Bancaria - " + b.Date.Format("January 2006")
		}
	}
	return "Conciliación Bancaria"
}
