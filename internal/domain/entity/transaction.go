// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single product sale loaded from the seed dataset.
// Transactions are immutable once loaded; the whole set is replaced by ingestion.
type Transaction struct {
	ID          int64
	Title       string
	Description string
	Price       decimal.Decimal
	Category    string
	Image       string // Optional, carried over from the source dataset
	DateOfSale  time.Time
	Sold        bool
}

// SaleMonth returns the calendar month of the sale in the offset it was recorded with.
func (t *Transaction) SaleMonth() time.Month {
	return t.DateOfSale.Month()
}

// PriceText returns the canonical textual form of the price used by search.
func (t *Transaction) PriceText() string {
	return t.Price.String()
}

// TransactionPage represents one page of transactions together with the match count.
type TransactionPage struct {
	Transactions []*Transaction
	Total        int64
	Page         int
	PageSize     int
	TotalPages   int
}

// SalesStatistics represents the aggregated totals for a month.
type SalesStatistics struct {
	TotalAmount decimal.Decimal
	SoldCount   int64
	UnsoldCount int64
}

// PriceRangeCount represents the number of transactions in one price bucket.
type PriceRangeCount struct {
	Range string
	Count int64
}

// CategoryCount represents the number of transactions in one category.
type CategoryCount struct {
	Category string
	Count    int64
}

// CombinedReport bundles the three month reports.
type CombinedReport struct {
	Statistics SalesStatistics
	PriceRange []PriceRangeCount
	Categories []CategoryCount
}
