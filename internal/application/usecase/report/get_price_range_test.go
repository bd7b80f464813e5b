package report

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerror "github.com/sales-report/backend/internal/domain/error"
	"github.com/sales-report/backend/internal/domain/valueobject"
)

func TestGetPriceRangeUseCase_March(t *testing.T) {
	uc := NewGetPriceRangeUseCase(newSeededStore(t))

	histogram, err := uc.Execute(context.Background(), GetPriceRangeInput{Month: valueobject.ForMonth(time.March)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{1, 1, 0, 0, 0, 0, 0, 0, 0, 0}
	if len(histogram) != len(want) {
		t.Fatalf("expected %d buckets, got %d", len(want), len(histogram))
	}
	for i, count := range want {
		if histogram[i].Range != valueobject.PriceBuckets[i].Label {
			t.Errorf("bucket %d: expected label %q, got %q", i, valueobject.PriceBuckets[i].Label, histogram[i].Range)
		}
		if histogram[i].Count != count {
			t.Errorf("bucket %s: expected %d, got %d", histogram[i].Range, count, histogram[i].Count)
		}
	}
}

func TestGetPriceRangeUseCase_PartitionsMonth(t *testing.T) {
	store := newSeededStore(t)
	uc := NewGetPriceRangeUseCase(store)

	months := []valueobject.MonthFilter{valueobject.AnyMonth(), valueobject.ParseMonthFilter("bogus")}
	for m := time.January; m <= time.December; m++ {
		months = append(months, valueobject.ForMonth(m))
	}

	for _, month := range months {
		histogram, err := uc.Execute(context.Background(), GetPriceRangeInput{Month: month})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(histogram) != 10 {
			t.Fatalf("%q: expected 10 buckets, got %d", month, len(histogram))
		}

		var sum int64
		for _, b := range histogram {
			sum += b.Count
		}

		count, err := store.Count(context.Background(), valueobject.MonthPredicate(month))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sum != count {
			t.Errorf("%q: bucket counts sum to %d, month has %d transactions", month, sum, count)
		}
	}
}

func TestGetPriceRangeUseCase_StoreFailure(t *testing.T) {
	_, err := NewGetPriceRangeUseCase(failingStore{}).Execute(context.Background(), GetPriceRangeInput{})
	if !errors.Is(err, domainerror.ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}
