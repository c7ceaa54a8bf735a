package model

import "github.com/shopspring/decimal"

// NoRow marks the absent side of an outer-joined MatchLink.
const NoRow = -1

// MatchLink pairs one exploded book identifier with at most one bank
// entry sharing it. A book entry with several identifiers produces one
// link per identifier; a bank entry nothing points at produces a link
// with no book side.
type MatchLink struct {
	BookRow    int // NoRow when the link has no book side
	Identifier string
	BankRow    int // NoRow when no bank entry shares the identifier
	Matched    bool
}

// CheckStatus is the per-record outcome of the check-validation flow.
type CheckStatus string

const (
	StatusNoIdentifiers CheckStatus = "no-identifiers"
	StatusReconciled    CheckStatus = "reconciled"
	StatusNotFound      CheckStatus = "not-found-in-bank"
	StatusDiscrepancy   CheckStatus = "amount-discrepancy"
)

// CheckResult annotates one book entry with the aggregated bank amount
// found for its identifiers.
type CheckResult struct {
	Entry      BookEntry
	BankTotal  decimal.Decimal
	Difference decimal.Decimal // Entry.Amount - BankTotal
	Status     CheckStatus
	Links      []MatchLink
}
