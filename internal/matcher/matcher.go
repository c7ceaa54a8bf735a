// Package matcher joins the normalized book and bank record sets on
// extracted check identifiers. The join is built from three explicit
// stages so each is testable alone: explode book entries into one link
// per identifier, equi-join links against the bank voucher index, and
// group results back by parent entry.
package matcher

import (
	"strings"

	"github.com/Franco-Arce/Tuchi/internal/model"
)

// Result is the matched/unmatched partition produced by Match.
type Result struct {
	Links []model.MatchLink

	matchedBook map[int]bool
	matchedBank map[int]bool

	// SharedBankMatches counts bank entries matched by identifiers
	// from more than one book entry. No uniqueness constraint is
	// enforced; the count lets callers flag possible double-matching
	// for review.
	SharedBankMatches int
}

// Explode expands book entries into one MatchLink per extracted
// identifier. Entries with no identifiers still yield one link, which
// can never match.
func Explode(books []model.BookEntry) []model.MatchLink {
	var links []model.MatchLink
	for _, b := range books {
		if len(b.Identifiers) == 0 {
			links = append(links, model.MatchLink{BookRow: b.Row, BankRow: model.NoRow})
			continue
		}
		for _, id := range b.Identifiers {
			links = append(links, model.MatchLink{
				BookRow:    b.Row,
				Identifier: strings.TrimSpace(id),
				BankRow:    model.NoRow,
			})
		}
	}
	return links
}

// voucherIndex keys bank rows by trimmed voucher text. Identifier
// comparison is always textual: "0123" and "123" do not match.
func voucherIndex(banks []model.BankEntry) map[string][]int {
	idx := make(map[string][]int)
	for _, b := range banks {
		v := strings.TrimSpace(b.Voucher)
		if v == "" {
			continue
		}
		idx[v] = append(idx[v], b.Row)
	}
	return idx
}

// Match runs the explode-and-outer-join discipline: every book link
// and every bank entry appears in the result, and a link is matched
// iff both sides share an identifier. An entry is globally matched iff
// at least one of its links matched.
func Match(books []model.BookEntry, banks []model.BankEntry) *Result {
	links := Explode(books)
	idx := voucherIndex(banks)

	res := &Result{
		matchedBook: make(map[int]bool),
		matchedBank: make(map[int]bool),
	}
	bankMatchedBy := make(map[int]map[int]bool)

	for _, link := range links {
		if rows, ok := idx[link.Identifier]; ok && link.Identifier != "" {
			for _, bankRow := range rows {
				res.Links = append(res.Links, model.MatchLink{
					BookRow:    link.BookRow,
					Identifier: link.Identifier,
					BankRow:    bankRow,
					Matched:    true,
				})
				res.matchedBook[link.BookRow] = true
				res.matchedBank[bankRow] = true
				if bankMatchedBy[bankRow] == nil {
					bankMatchedBy[bankRow] = make(map[int]bool)
				}
				bankMatchedBy[bankRow][link.BookRow] = true
			}
			continue
		}
		res.Links = append(res.Links, link)
	}

	// Outer join: bank entries no identifier pointed at still appear.
	for _, b := range banks {
		if !res.matchedBank[b.Row] {
			res.Links = append(res.Links, model.MatchLink{
				BookRow:    model.NoRow,
				Identifier: strings.TrimSpace(b.Voucher),
				BankRow:    b.Row,
			})
		}
	}

	for _, books := range bankMatchedBy {
		if len(books) > 1 {
			res.SharedBankMatches++
		}
	}
	return res
}

// BookMatched reports whether the book entry at row matched at least
// one bank entry.
func (r *Result) BookMatched(row int) bool { return r.matchedBook[row] }

// BankMatched reports whether the bank entry at row was matched by at
// least one book identifier.
func (r *Result) BankMatched(row int) bool { return r.matchedBank[row] }

// MatchedLinks returns the number of matched exploded rows.
func (r *Result) MatchedLinks() int {
	n := 0
	for _, l := range r.Links {
		if l.Matched {
			n++
		}
	}
	return n
}

// MatchedBookEntries returns the number of distinct matched book entries.
func (r *Result) MatchedBookEntries() int { return len(r.matchedBook) }

// UnmatchedBooks filters books down to entries with no matched link.
func (r *Result) UnmatchedBooks(books []model.BookEntry) []model.BookEntry {
	var out []model.BookEntry
	for _, b := range books {
		if !r.matchedBook[b.Row] {
			out = append(out, b)
		}
	}
	return out
}

// UnmatchedBanks filters banks down to entries no identifier matched.
func (r *Result) UnmatchedBanks(banks []model.BankEntry) []model.BankEntry {
	var out []model.BankEntry
	for _, b := range banks {
		if !r.matchedBank[b.Row] {
			out = append(out, b)
		}
	}
	return out
}
