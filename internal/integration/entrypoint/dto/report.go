package dto

import (
	"time"

	"github.com/sales-report/backend/internal/domain/entity"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	DateOfSale  string  `json:"dateOfSale"`
	Sold        bool    `json:"sold"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int64                 `json:"total"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"per_page"`
	TotalPages   int                   `json:"total_pages"`
}

// StatisticsResponse represents the month statistics.
type StatisticsResponse struct {
	TotalAmount float64 `json:"totalAmount"`
	SoldCount   int64   `json:"soldCount"`
	UnsoldCount int64   `json:"unsoldCount"`
}

// PriceRangeResponse represents one histogram bucket.
type PriceRangeResponse struct {
	Bucket string `json:"bucket"`
	Count  int64  `json:"count"`
}

// CategoryCountResponse represents one category of the breakdown.
type CategoryCountResponse struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CombinedReportResponse represents the combined month report.
type CombinedReportResponse struct {
	Statistics        StatisticsResponse      `json:"statistics"`
	Histogram         []PriceRangeResponse    `json:"histogram"`
	CategoryBreakdown []CategoryCountResponse `json:"categoryBreakdown"`
}

// ToTransactionResponse converts a domain Transaction entity to a TransactionResponse DTO.
func ToTransactionResponse(txn *entity.Transaction) TransactionResponse {
	price, _ := txn.Price.Float64()
	return TransactionResponse{
		ID:          txn.ID,
		Title:       txn.Title,
		Description: txn.Description,
		Price:       price,
		Category:    txn.Category,
		Image:       txn.Image,
		DateOfSale:  txn.DateOfSale.Format(time.RFC3339),
		Sold:        txn.Sold,
	}
}

// ToTransactionListResponse converts a TransactionPage to a TransactionListResponse DTO.
func ToTransactionListResponse(page *entity.TransactionPage) TransactionListResponse {
	transactions := make([]TransactionResponse, len(page.Transactions))
	for i, txn := range page.Transactions {
		transactions[i] = ToTransactionResponse(txn)
	}

	return TransactionListResponse{
		Transactions: transactions,
		Total:        page.Total,
		Page:         page.Page,
		PerPage:      page.PageSize,
		TotalPages:   page.TotalPages,
	}
}

// ToStatisticsResponse converts SalesStatistics to a StatisticsResponse DTO.
func ToStatisticsResponse(stats *entity.SalesStatistics) StatisticsResponse {
	total, _ := stats.TotalAmount.Float64()
	return StatisticsResponse{
		TotalAmount: total,
		SoldCount:   stats.SoldCount,
		UnsoldCount: stats.UnsoldCount,
	}
}

// ToPriceRangeResponse converts histogram buckets to PriceRangeResponse DTOs.
func ToPriceRangeResponse(buckets []entity.PriceRangeCount) []PriceRangeResponse {
	response := make([]PriceRangeResponse, len(buckets))
	for i, b := range buckets {
		response[i] = PriceRangeResponse{
			Bucket: b.Range,
			Count:  b.Count,
		}
	}
	return response
}

// ToCategoryBreakdownResponse converts category counts to CategoryCountResponse DTOs.
func ToCategoryBreakdownResponse(categories []entity.CategoryCount) []CategoryCountResponse {
	response := make([]CategoryCountResponse, len(categories))
	for i, c := range categories {
		response[i] = CategoryCountResponse{
			Category: c.Category,
			Count:    c.Count,
		}
	}
	return response
}

// ToCombinedReportResponse converts a CombinedReport to a CombinedReportResponse DTO.
func ToCombinedReportResponse(report *entity.CombinedReport) CombinedReportResponse {
	return CombinedReportResponse{
		Statistics:        ToStatisticsResponse(&report.Statistics),
		Histogram:         ToPriceRangeResponse(report.PriceRange),
		CategoryBreakdown: ToCategoryBreakdownResponse(report.Categories),
	}
}
