package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sales-report/backend/internal/application/usecase/ingestion"
	domainerror "github.com/sales-report/backend/internal/domain/error"
	"github.com/sales-report/backend/internal/integration/entrypoint/dto"
)

// SeedController handles the ingestion trigger endpoint.
type SeedController struct {
	seedTransactionsUseCase *ingestion.SeedTransactionsUseCase
}

// NewSeedController creates a new seed controller instance.
func NewSeedController(seedTransactionsUseCase *ingestion.SeedTransactionsUseCase) *SeedController {
	return &SeedController{
		seedTransactionsUseCase: seedTransactionsUseCase,
	}
}

// Seed handles GET and POST /seed requests.
// It replaces the stored dataset with a fresh copy of the external snapshot.
func (c *SeedController) Seed(ctx *gin.Context) {
	output, err := c.seedTransactionsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleIngestionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSeedResponse(output))
}

// handleIngestionError handles ingestion errors and returns appropriate HTTP responses.
func (c *SeedController) handleIngestionError(ctx *gin.Context, err error) {
	var ingErr *domainerror.IngestionError
	if errors.As(err, &ingErr) {
		statusCode := c.getStatusCodeForIngestionError(ingErr.Code)
		response := dto.ErrorResponse{
			Error: ingErr.Message,
			Code:  string(ingErr.Code),
		}
		if statusCode != http.StatusInternalServerError && ingErr.Err != nil {
			response.Details = ingErr.Err.Error()
		}
		ctx.JSON(statusCode, response)
		return
	}

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForIngestionError maps ingestion error codes to HTTP status codes.
func (c *SeedController) getStatusCodeForIngestionError(code domainerror.IngestionErrorCode) int {
	switch code {
	case domainerror.ErrCodeSnapshotFetchFailed,
		domainerror.ErrCodeSnapshotBadStatus:
		return http.StatusBadGateway
	case domainerror.ErrCodeSnapshotNotArray,
		domainerror.ErrCodeSnapshotMissingField,
		domainerror.ErrCodeSnapshotInvalidValue,
		domainerror.ErrCodeSnapshotDuplicateID:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeIngestionInProgress:
		return http.StatusConflict
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
