package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sales-report/backend/internal/application/adapter"
	"github.com/sales-report/backend/internal/application/usecase/report"
	"github.com/sales-report/backend/internal/integration/entrypoint/dto"
)

func newReportEngine(store adapter.TransactionStore) *gin.Engine {
	statistics := report.NewGetStatisticsUseCase(store)
	priceRange := report.NewGetPriceRangeUseCase(store)
	categories := report.NewGetCategoryBreakdownUseCase(store)
	c := NewReportController(
		report.NewListTransactionsUseCase(store),
		statistics,
		priceRange,
		categories,
		report.NewGetCombinedReportUseCase(statistics, priceRange, categories),
	)

	engine := gin.New()
	engine.GET("/transactions", c.List)
	engine.GET("/statistics", c.Statistics)
	engine.GET("/price-range", c.PriceRange)
	engine.GET("/categories", c.Categories)
	engine.GET("/combined-data", c.Combined)
	return engine
}

func TestReportController_List(t *testing.T) {
	engine := newReportEngine(newSeededStore(t))

	tests := []struct {
		name        string
		target      string
		wantIDs     []int64
		wantTotal   int64
		wantPerPage int
		wantPages   int
	}{
		{
			name:        "defaults",
			target:      "/transactions",
			wantIDs:     []int64{1, 2, 3},
			wantTotal:   3,
			wantPerPage: 10,
			wantPages:   1,
		},
		{
			name:        "month with paging",
			target:      "/transactions?month=March&page=2&per_page=1",
			wantIDs:     []int64{2},
			wantTotal:   2,
			wantPerPage: 1,
			wantPages:   2,
		},
		{
			name:        "camel case page size",
			target:      "/transactions?perPage=2",
			wantIDs:     []int64{1, 2},
			wantTotal:   3,
			wantPerPage: 2,
			wantPages:   2,
		},
		{
			name:        "search by title",
			target:      "/transactions?search=usb",
			wantIDs:     []int64{3},
			wantTotal:   1,
			wantPerPage: 10,
			wantPages:   1,
		},
		{
			name:        "search by price",
			target:      "/transactions?month=mar&search=150",
			wantIDs:     []int64{2},
			wantTotal:   1,
			wantPerPage: 10,
			wantPages:   1,
		},
		{
			name:        "page size is capped",
			target:      "/transactions?per_page=500",
			wantIDs:     []int64{1, 2, 3},
			wantTotal:   3,
			wantPerPage: report.MaxPageSize,
			wantPages:   1,
		},
		{
			name:        "unknown month matches nothing",
			target:      "/transactions?month=Smarch",
			wantIDs:     []int64{},
			wantTotal:   0,
			wantPerPage: 10,
			wantPages:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performRequest(t, engine, http.MethodGet, tt.target)
			expectStatus(t, rec, http.StatusOK)

			var got dto.TransactionListResponse
			decodeBody(t, rec, &got)

			if got.Total != tt.wantTotal {
				t.Errorf("expected total %d, got %d", tt.wantTotal, got.Total)
			}
			if got.PerPage != tt.wantPerPage {
				t.Errorf("expected per_page %d, got %d", tt.wantPerPage, got.PerPage)
			}
			if got.TotalPages != tt.wantPages {
				t.Errorf("expected total_pages %d, got %d", tt.wantPages, got.TotalPages)
			}
			if got.Transactions == nil {
				t.Fatal("expected an empty array rather than null")
			}
			if len(got.Transactions) != len(tt.wantIDs) {
				t.Fatalf("expected %d transactions, got %d", len(tt.wantIDs), len(got.Transactions))
			}
			for i, id := range tt.wantIDs {
				if got.Transactions[i].ID != id {
					t.Errorf("transaction %d: expected id %d, got %d", i, id, got.Transactions[i].ID)
				}
			}
		})
	}
}

func TestReportController_ListValidation(t *testing.T) {
	engine := newReportEngine(newSeededStore(t))

	tests := []struct {
		name     string
		target   string
		wantCode string
	}{
		{"page zero", "/transactions?page=0", "RPT-010001"},
		{"negative page", "/transactions?page=-3", "RPT-010001"},
		{"page not a number", "/transactions?page=first", "RPT-010001"},
		{"per_page zero", "/transactions?per_page=0", "RPT-010002"},
		{"per_page not a number", "/transactions?per_page=ten", "RPT-010002"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := performRequest(t, engine, http.MethodGet, tt.target)
			expectStatus(t, rec, http.StatusBadRequest)

			var got dto.ErrorResponse
			decodeBody(t, rec, &got)
			if got.Code != tt.wantCode {
				t.Errorf("expected code %s, got %s", tt.wantCode, got.Code)
			}
			if got.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestReportController_Statistics(t *testing.T) {
	engine := newReportEngine(newSeededStore(t))

	tests := []struct {
		month string
		want  dto.StatisticsResponse
	}{
		{"March", dto.StatisticsResponse{TotalAmount: 200, SoldCount: 1, UnsoldCount: 1}},
		{"04", dto.StatisticsResponse{TotalAmount: 950, SoldCount: 1}},
		{"December", dto.StatisticsResponse{}},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			rec := performRequest(t, engine, http.MethodGet, "/statistics?month="+tt.month)
			expectStatus(t, rec, http.StatusOK)

			var got dto.StatisticsResponse
			decodeBody(t, rec, &got)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestReportController_PriceRange(t *testing.T) {
	engine := newReportEngine(newSeededStore(t))

	rec := performRequest(t, engine, http.MethodGet, "/price-range?month=March")
	expectStatus(t, rec, http.StatusOK)

	var got []dto.PriceRangeResponse
	decodeBody(t, rec, &got)

	if len(got) != 10 {
		t.Fatalf("expected 10 buckets, got %d", len(got))
	}
	if got[0].Bucket != "0-100" || got[0].Count != 1 {
		t.Errorf("unexpected first bucket %+v", got[0])
	}
	if got[1].Bucket != "100-200" || got[1].Count != 1 {
		t.Errorf("unexpected second bucket %+v", got[1])
	}
	if got[9].Bucket != "901+" || got[9].Count != 0 {
		t.Errorf("unexpected last bucket %+v", got[9])
	}
}

func TestReportController_Categories(t *testing.T) {
	engine := newReportEngine(newSeededStore(t))

	rec := performRequest(t, engine, http.MethodGet, "/categories?month=March")
	expectStatus(t, rec, http.StatusOK)

	var got []dto.CategoryCountResponse
	decodeBody(t, rec, &got)

	want := []dto.CategoryCountResponse{
		{Category: "jewelery", Count: 1},
		{Category: "men's clothing", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("category %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestReportController_Combined(t *testing.T) {
	engine := newReportEngine(newSeededStore(t))

	rec := performRequest(t, engine, http.MethodGet, "/combined-data?month=April")
	expectStatus(t, rec, http.StatusOK)

	var got dto.CombinedReportResponse
	decodeBody(t, rec, &got)

	if got.Statistics.TotalAmount != 950 || got.Statistics.SoldCount != 1 {
		t.Errorf("unexpected statistics %+v", got.Statistics)
	}
	if len(got.Histogram) != 10 || got.Histogram[9].Count != 1 {
		t.Errorf("unexpected histogram %+v", got.Histogram)
	}
	if len(got.CategoryBreakdown) != 1 || got.CategoryBreakdown[0].Category != "electronics" {
		t.Errorf("unexpected category breakdown %+v", got.CategoryBreakdown)
	}
}

func TestReportController_StoreFailure(t *testing.T) {
	engine := newReportEngine(failingStore{})

	targets := []string{
		"/transactions?month=March",
		"/statistics?month=March",
		"/price-range?month=March",
		"/categories?month=March",
		"/combined-data?month=March",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			rec := performRequest(t, engine, http.MethodGet, target)
			expectStatus(t, rec, http.StatusInternalServerError)

			var got dto.ErrorResponse
			decodeBody(t, rec, &got)
			if got.Code != "RPT-990001" {
				t.Errorf("expected code RPT-990001, got %s", got.Code)
			}
			if got.Error != "An internal error occurred" {
				t.Errorf("expected the store error to be hidden, got %q", got.Error)
			}
		})
	}
}
