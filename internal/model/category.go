package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryKind classifies an unmatched difference.
type CategoryKind string

const (
	KindTemporal   CategoryKind = "Temporal"
	KindPermanente CategoryKind = "Permanente"
)

// Category is the classification assigned to an unmatched entry.
type Category struct {
	Kind          CategoryKind
	Subcategory   string
	RequiresEntry bool // true iff Permanente
	Temporary     bool // true iff Temporal
}

// Difference is an unmatched entry together with its assigned category.
type Difference struct {
	Source      Source
	Row         int
	Date        time.Time
	Description string
	Voucher     string // bank side only
	Amount      decimal.Decimal
	Category    Category
}
