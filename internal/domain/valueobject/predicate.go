package valueobject

import (
	"fmt"

	"github.com/sales-report/backend/internal/domain/entity"
)

// TransactionPredicate is the conjunction of every filter a report applies.
// Record stores either evaluate Matches directly or translate the fields
// into their own query language; both must select the same transactions.
type TransactionPredicate struct {
	Month  MonthFilter
	Search SearchFilter
	Sold   *bool // Optional, restricts to sold or unsold transactions
}

// MonthPredicate returns a predicate that only filters by month.
func MonthPredicate(month MonthFilter) TransactionPredicate {
	return TransactionPredicate{Month: month}
}

// WithSold returns a copy of the predicate restricted to the given sold flag.
func (p TransactionPredicate) WithSold(sold bool) TransactionPredicate {
	p.Sold = &sold
	return p
}

// Matches reports whether the transaction satisfies every filter.
func (p TransactionPredicate) Matches(t *entity.Transaction) bool {
	if !p.Month.Matches(t.DateOfSale) {
		return false
	}
	if p.Sold != nil && t.Sold != *p.Sold {
		return false
	}
	return p.Search.Matches(t.Title, t.Description, t.PriceText())
}

// String renders the predicate for logs and error messages.
func (p TransactionPredicate) String() string {
	s := fmt.Sprintf("month=%q search=%q", p.Month.String(), p.Search.Term())
	if p.Sold != nil {
		s += fmt.Sprintf(" sold=%t", *p.Sold)
	}
	return s
}
