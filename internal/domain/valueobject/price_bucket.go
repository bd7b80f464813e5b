package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PriceBucket is a half-open price interval [Lower, Upper). The last bucket
// has no upper bound.
type PriceBucket struct {
	Label   string
	Lower   decimal.Decimal
	Upper   decimal.Decimal
	Bounded bool
}

// bucketWidth is the width of every bounded bucket.
const bucketWidth = 100

// boundedBucketCount is the number of buckets before the open-ended one.
const boundedBucketCount = 9

// OpenBucketLabel labels the final, unbounded bucket.
const OpenBucketLabel = "901+"

// PriceBuckets lists the histogram buckets in ascending order:
// [0,100), [100,200), ..., [800,900), [900,∞).
var PriceBuckets = func() []PriceBucket {
	buckets := make([]PriceBucket, 0, boundedBucketCount+1)
	for i := 0; i < boundedBucketCount; i++ {
		lower := int64(i * bucketWidth)
		upper := lower + bucketWidth
		buckets = append(buckets, PriceBucket{
			Label:   fmt.Sprintf("%d-%d", lower, upper),
			Lower:   decimal.NewFromInt(lower),
			Upper:   decimal.NewFromInt(upper),
			Bounded: true,
		})
	}
	buckets = append(buckets, PriceBucket{
		Label: OpenBucketLabel,
		Lower: decimal.NewFromInt(boundedBucketCount * bucketWidth),
	})
	return buckets
}()

// Contains reports whether the price falls in the bucket.
func (b PriceBucket) Contains(price decimal.Decimal) bool {
	if price.LessThan(b.Lower) {
		return false
	}
	return !b.Bounded || price.LessThan(b.Upper)
}

// BucketLabelFor returns the label of the bucket the price falls in.
// Negative prices are clamped into the first bucket.
func BucketLabelFor(price decimal.Decimal) string {
	for _, b := range PriceBuckets {
		if b.Contains(price) {
			return b.Label
		}
	}
	return PriceBuckets[0].Label
}
