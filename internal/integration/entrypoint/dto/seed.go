package dto

import (
	"github.com/sales-report/backend/internal/application/usecase/ingestion"
)

// SeedResponse represents the response of a successful ingestion.
type SeedResponse struct {
	Message    string `json:"message"`
	Loaded     int    `json:"loaded"`
	RunID      string `json:"run_id"`
	Source     string `json:"source"`
	DurationMs int64  `json:"duration_ms"`
}

// ToSeedResponse converts a SeedTransactionsOutput to a SeedResponse DTO.
func ToSeedResponse(output *ingestion.SeedTransactionsOutput) SeedResponse {
	return SeedResponse{
		Message:    "Database seeded successfully!",
		Loaded:     output.Loaded,
		RunID:      output.RunID.String(),
		Source:     output.Source,
		DurationMs: output.Duration.Milliseconds(),
	}
}
