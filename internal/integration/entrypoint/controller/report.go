// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sales-report/backend/internal/application/usecase/report"
	domainerror "github.com/sales-report/backend/internal/domain/error"
	"github.com/sales-report/backend/internal/domain/valueobject"
	"github.com/sales-report/backend/internal/integration/entrypoint/dto"
)

// ReportController handles the month report endpoints.
type ReportController struct {
	listTransactionsUseCase     *report.ListTransactionsUseCase
	getStatisticsUseCase        *report.GetStatisticsUseCase
	getPriceRangeUseCase        *report.GetPriceRangeUseCase
	getCategoryBreakdownUseCase *report.GetCategoryBreakdownUseCase
	getCombinedReportUseCase    *report.GetCombinedReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(
	listTransactionsUseCase *report.ListTransactionsUseCase,
	getStatisticsUseCase *report.GetStatisticsUseCase,
	getPriceRangeUseCase *report.GetPriceRangeUseCase,
	getCategoryBreakdownUseCase *report.GetCategoryBreakdownUseCase,
	getCombinedReportUseCase *report.GetCombinedReportUseCase,
) *ReportController {
	return &ReportController{
		listTransactionsUseCase:     listTransactionsUseCase,
		getStatisticsUseCase:        getStatisticsUseCase,
		getPriceRangeUseCase:        getPriceRangeUseCase,
		getCategoryBreakdownUseCase: getCategoryBreakdownUseCase,
		getCombinedReportUseCase:    getCombinedReportUseCase,
	}
}

// List handles GET /transactions requests.
func (c *ReportController) List(ctx *gin.Context) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "page must be an integer",
			Code:  string(domainerror.ErrCodeInvalidPage),
		})
		return
	}

	perPageStr := ctx.Query("per_page")
	if perPageStr == "" {
		perPageStr = ctx.DefaultQuery("perPage", strconv.Itoa(report.DefaultPageSize))
	}
	perPage, err := strconv.Atoi(perPageStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "per_page must be an integer",
			Code:  string(domainerror.ErrCodeInvalidPageSize),
		})
		return
	}

	input := report.ListTransactionsInput{
		Month:    valueobject.ParseMonthFilter(ctx.Query("month")),
		Search:   ctx.Query("search"),
		Page:     page,
		PageSize: perPage,
	}

	output, err := c.listTransactionsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Statistics handles GET /statistics requests.
func (c *ReportController) Statistics(ctx *gin.Context) {
	input := report.GetStatisticsInput{
		Month: valueobject.ParseMonthFilter(ctx.Query("month")),
	}

	output, err := c.getStatisticsUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToStatisticsResponse(output))
}

// PriceRange handles GET /price-range requests.
func (c *ReportController) PriceRange(ctx *gin.Context) {
	input := report.GetPriceRangeInput{
		Month: valueobject.ParseMonthFilter(ctx.Query("month")),
	}

	output, err := c.getPriceRangeUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPriceRangeResponse(output))
}

// Categories handles GET /categories requests.
func (c *ReportController) Categories(ctx *gin.Context) {
	input := report.GetCategoryBreakdownInput{
		Month: valueobject.ParseMonthFilter(ctx.Query("month")),
	}

	output, err := c.getCategoryBreakdownUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// Combined handles GET /combined-data requests.
func (c *ReportController) Combined(ctx *gin.Context) {
	input := report.GetCombinedReportInput{
		Month: valueobject.ParseMonthFilter(ctx.Query("month")),
	}

	output, err := c.getCombinedReportUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCombinedReportResponse(output))
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		statusCode := http.StatusInternalServerError
		message := "An internal error occurred"
		if reportErr.IsValidation() {
			statusCode = http.StatusBadRequest
			message = reportErr.Message
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: message,
			Code:  string(reportErr.Code),
		})
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
