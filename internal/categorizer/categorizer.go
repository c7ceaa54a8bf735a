// Package categorizer buckets unmatched entries into temporal and
// permanent differences by ordered keyword rules over the description,
// with a source-aware default when nothing matches. Permanent rules
// run before temporal ones: a description containing keywords from
// both tables is always Permanente.
package categorizer

import (
	"strings"

	"github.com/Franco-Arce/Tuchi/internal/model"
)

// Categorizer evaluates the two rule tables in fixed order.
type Categorizer struct {
	permanent []Rule
	temporal  []Rule
}

// New returns a Categorizer with the built-in rule tables. Extra rules
// are appended after the built-ins, preserving their given order.
func New(extraPermanent, extraTemporal []Rule) *Categorizer {
	return &Categorizer{
		permanent: append(defaultPermanentRules(), extraPermanent...),
		temporal:  append(defaultTemporalRules(), extraTemporal...),
	}
}

// Categorize classifies a description from the given source.
func (c *Categorizer) Categorize(description string, source model.Source) model.Category {
	desc := strings.ToLower(description)

	for _, r := range c.permanent {
		if strings.Contains(desc, r.Keyword) {
			return permanente(r.Subcategory)
		}
	}
	for _, r := range c.temporal {
		if strings.Contains(desc, r.Keyword) {
			return temporal(r.Subcategory)
		}
	}

	// No keyword hit: an item only the book knows is most likely a
	// deposit the bank has not credited yet; an item only the bank
	// knows is an entry the company never recorded.
	if source == model.SourceBook {
		return temporal(SubcategoryDepositsInTransit)
	}
	return permanente(SubcategoryOmittedNotes)
}

// ClassifyBook wraps an unmatched book entry as a Difference.
func (c *Categorizer) ClassifyBook(e model.BookEntry) model.Difference {
	return model.Difference{
		Source:      model.SourceBook,
		Row:         e.Row,
		Date:        e.Date,
		Description: e.Concept,
		Amount:      e.Amount,
		Category:    c.Categorize(e.Concept, model.SourceBook),
	}
}

// ClassifyBank wraps an unmatched bank entry as a Difference.
func (c *Categorizer) ClassifyBank(e model.BankEntry) model.Difference {
	return model.Difference{
		Source:      model.SourceBank,
		Row:         e.Row,
		Date:        e.Date,
		Description: e.Description,
		Voucher:     e.Voucher,
		Amount:      e.Amount,
		Category:    c.Categorize(e.Description, model.SourceBank),
	}
}

func permanente(sub string) model.Category {
	return model.Category{
		Kind:          model.KindPermanente,
		Subcategory:   sub,
		RequiresEntry: true,
	}
}

func temporal(sub string) model.Category {
	return model.Category{
		Kind:        model.KindTemporal,
		Subcategory: sub,
		Temporary:   true,
	}
}
