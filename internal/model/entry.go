package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies which ledger a record came from.
type Source string

const (
	SourceBook Source = "libro"
	SourceBank Source = "extracto"
)

// BookEntry is a normalized row from the internal accounting book.
type BookEntry struct {
	Row         int // stable row index in the source sheet
	Date        time.Time
	Concept     string
	Amount      decimal.Decimal // credit - debit
	Identifiers []string        // check numbers extracted from Concept
}

// BankEntry is a normalized row from the bank statement.
type BankEntry struct {
	Row         int
	Date        time.Time
	Description string
	Voucher     string          // comprobante id, empty if absent
	Amount      decimal.Decimal // credit - debit
	Balance     decimal.Decimal // running balance as stated by the bank
	HasBalance  bool
}
