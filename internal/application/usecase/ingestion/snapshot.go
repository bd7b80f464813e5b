// Package ingestion contains the use cases that (re)load the transaction dataset.
package ingestion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sales-report/backend/internal/domain/entity"
	domainerror "github.com/sales-report/backend/internal/domain/error"
)

// snapshotRecord mirrors one element of the source JSON array.
// Pointer fields distinguish a missing field from a zero value.
type snapshotRecord struct {
	ID          *int64           `json:"id"`
	Title       *string          `json:"title"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Image       string           `json:"image"`
	Sold        *bool            `json:"sold"`
	DateOfSale  *string          `json:"dateOfSale"`
}

// dateLayouts lists the accepted dateOfSale formats, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseSnapshot decodes and validates a raw snapshot. Either every record is
// valid and the full set is returned, or an IngestionError describes the
// first offending record.
func ParseSnapshot(data []byte) ([]*entity.Transaction, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeSnapshotNotArray,
			"snapshot must be a JSON array of transactions",
			domainerror.ErrSnapshotMalformed,
		)
	}

	var records []snapshotRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeSnapshotNotArray,
			"snapshot could not be decoded",
			fmt.Errorf("%w: %w", domainerror.ErrSnapshotMalformed, err),
		)
	}

	transactions := make([]*entity.Transaction, 0, len(records))
	seen := make(map[int64]int, len(records))

	for i, record := range records {
		txn, err := record.toEntity(i)
		if err != nil {
			return nil, err
		}

		if first, dup := seen[txn.ID]; dup {
			return nil, domainerror.NewIngestionError(
				domainerror.ErrCodeSnapshotDuplicateID,
				fmt.Sprintf("record %d reuses id %d of record %d", i, txn.ID, first),
				domainerror.ErrSnapshotMalformed,
			)
		}
		seen[txn.ID] = i

		transactions = append(transactions, txn)
	}

	return transactions, nil
}

// toEntity validates the record at the given position and converts it.
func (r snapshotRecord) toEntity(index int) (*entity.Transaction, error) {
	missing := r.missingFields()
	if len(missing) > 0 {
		return nil, domainerror.NewIngestionError(
			domainerror.ErrCodeSnapshotMissingField,
			fmt.Sprintf("record %d is missing required fields: %s", index, strings.Join(missing, ", ")),
			domainerror.ErrSnapshotMalformed,
		)
	}

	if r.Price.IsNegative() {
		return nil, invalidValue(index, "price must not be negative")
	}

	dateOfSale, err := parseDateOfSale(*r.DateOfSale)
	if err != nil {
		return nil, invalidValue(index, fmt.Sprintf("dateOfSale %q is not a valid timestamp", *r.DateOfSale))
	}

	id := int64(index + 1)
	if r.ID != nil {
		if *r.ID <= 0 {
			return nil, invalidValue(index, "id must be positive")
		}
		id = *r.ID
	}

	return &entity.Transaction{
		ID:          id,
		Title:       strings.TrimSpace(*r.Title),
		Description: *r.Description,
		Price:       r.Price.Round(2), // cents, as persisted
		Category:    strings.TrimSpace(*r.Category),
		Image:       r.Image,
		DateOfSale:  dateOfSale,
		Sold:        *r.Sold,
	}, nil
}

// missingFields lists the required fields absent from the record.
func (r snapshotRecord) missingFields() []string {
	var missing []string
	if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
		missing = append(missing, "title")
	}
	if r.Description == nil {
		missing = append(missing, "description")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	if r.Category == nil || strings.TrimSpace(*r.Category) == "" {
		missing = append(missing, "category")
	}
	if r.Sold == nil {
		missing = append(missing, "sold")
	}
	if r.DateOfSale == nil || strings.TrimSpace(*r.DateOfSale) == "" {
		missing = append(missing, "dateOfSale")
	}
	return missing
}

func parseDateOfSale(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func invalidValue(index int, reason string) error {
	return domainerror.NewIngestionError(
		domainerror.ErrCodeSnapshotInvalidValue,
		fmt.Sprintf("record %d: %s", index, reason),
		domainerror.ErrSnapshotMalformed,
	)
}
