// Package summary computes the per-run metrics reported alongside the
// reconciliation statement. Metric names mirror the workbook keys
// accountants already use ("items_coinciden",
// "diferencias_temporales_monto", ...).
package summary

import (
	"github.com/shopspring/decimal"

	"github.com/Franco-Arce/Tuchi/internal/model"
)

// Residual magnitudes callers may want to flag.
type ResidualLevel string

const (
	ResidualNegligible  ResidualLevel = "negligible"
	ResidualNotable     ResidualLevel = "notable"
	ResidualSignificant ResidualLevel = "significant"
)

// Reconciliation aggregates a variant-a run.
type Reconciliation struct {
	BankEnding decimal.Decimal
	BookEnding decimal.Decimal
	Difference decimal.Decimal // BookEnding - BankEnding

	MatchedEntries int // distinct matched book entries
	MatchedLinks   int // matched exploded identifier rows

	TemporalCount   int
	TemporalAmount  decimal.Decimal
	PermanentCount  int
	PermanentAmount decimal.Decimal

	SharedBankMatches int
	Residual          decimal.Decimal // unexplained after the statement walk
}

// MatchStats carries the matcher counts the summary reports.
type MatchStats struct {
	MatchedEntries    int
	MatchedLinks      int
	SharedBankMatches int
}

// Aggregate computes the variant-a summary from the matched partition
// and the categorized differences of both sides.
func Aggregate(stats MatchStats, bookDiffs, bankDiffs []model.Difference, bankEnding, bookEnding, residual decimal.Decimal) Reconciliation {
	s := Reconciliation{
		BankEnding:        bankEnding,
		BookEnding:        bookEnding,
		Difference:        bookEnding.Sub(bankEnding),
		MatchedEntries:    stats.MatchedEntries,
		MatchedLinks:      stats.MatchedLinks,
		SharedBankMatches: stats.SharedBankMatches,
		TemporalAmount:    decimal.Zero,
		PermanentAmount:   decimal.Zero,
		Residual:          residual,
	}
	for _, d := range append(append([]model.Difference{}, bookDiffs...), bankDiffs...) {
		if d.Category.Temporary {
			s.TemporalCount++
			s.TemporalAmount = s.TemporalAmount.Add(d.Amount)
		} else {
			s.PermanentCount++
			s.PermanentAmount = s.PermanentAmount.Add(d.Amount)
		}
	}
	return s
}

// Checks aggregates a variant-b run.
type Checks struct {
	Total           int
	WithIdentifiers int
	Reconciled      int

	AnalyzedAmount   decimal.Decimal // sum of book amounts with identifiers
	ReconciledAmount decimal.Decimal // sum of reconciled book amounts
	Difference       decimal.Decimal // AnalyzedAmount - ReconciledAmount
}

// AggregateChecks computes the variant-b summary.
func AggregateChecks(results []model.CheckResult) Checks {
	s := Checks{
		AnalyzedAmount:   decimal.Zero,
		ReconciledAmount: decimal.Zero,
	}
	for _, r := range results {
		s.Total++
		if r.Status == model.StatusNoIdentifiers {
			continue
		}
		s.WithIdentifiers++
		s.AnalyzedAmount = s.AnalyzedAmount.Add(r.Entry.Amount)
		if r.Status == model.StatusReconciled {
			s.Reconciled++
			s.ReconciledAmount = s.ReconciledAmount.Add(r.Entry.Amount)
		}
	}
	s.Difference = s.AnalyzedAmount.Sub(s.ReconciledAmount)
	return s
}

// Thresholds classifies residual magnitudes.
type Thresholds struct {
	Negligible  decimal.Decimal // below: not worth flagging
	Significant decimal.Decimal // above: flag loudly
}

// DefaultThresholds returns the conventional $1 / $10,000 bounds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Negligible:  decimal.NewFromInt(1),
		Significant: decimal.NewFromInt(10000),
	}
}

// Classify buckets a residual by magnitude.
func (t Thresholds) Classify(residual decimal.Decimal) ResidualLevel {
	abs := residual.Abs()
	switch {
	case abs.LessThan(t.Negligible):
		return ResidualNegligible
	case abs.GreaterThan(t.Significant):
		return ResidualSignificant
	default:
		return ResidualNotable
	}
}
