package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bucket is the subdivision size of a trend series.
type Bucket string

const (
	BucketDay   Bucket = "day"
	BucketWeek  Bucket = "week"
	BucketMonth Bucket = "month"
)

// TrendPoint is one bucket of a trend series. Balance is the cumulative net
// across buckets processed so far, for running-balance charts.
type TrendPoint struct {
	BucketStart time.Time
	Income      decimal.Decimal
	Expense     decimal.Decimal
	Balance     decimal.Decimal
}

// Series partitions rng into contiguous buckets and rolls each one up,
// emitting one point per bucket even when the bucket is empty. Month buckets
// align to calendar months, so the first and last may be partial.
func (e *Engine) Series(ctx context.Context, scope Scope, rng Range, bucket Bucket) ([]TrendPoint, error) {
	if rng.End.Before(rng.Start) {
		return nil, ErrInvalidRange
	}

	switch bucket {
	case BucketDay, BucketWeek, BucketMonth:
	default:
		return nil, fmt.Errorf("unknown bucket size %q", bucket)
	}

	var points []TrendPoint

	balance := decimal.Zero

	for start := rng.Start; !start.After(rng.End); {
		end := bucketEnd(start, bucket)
		if end.After(rng.End) {
			end = rng.End
		}

		rollup, err := e.Rollup(ctx, scope, Range{Start: start, End: end})
		if err != nil {
			return nil, err
		}

		balance = balance.Add(rollup.Net)
		points = append(points, TrendPoint{
			BucketStart: start,
			Income:      rollup.Income,
			Expense:     rollup.Expense,
			Balance:     balance,
		})

		start = end.AddDate(0, 0, 1)
	}

	return points, nil
}

// bucketEnd returns the last day covered by the bucket starting at start.
func bucketEnd(start time.Time, bucket Bucket) time.Time {
	switch bucket {
	case BucketWeek:
		return start.AddDate(0, 0, 6)
	case BucketMonth:
		firstOfMonth := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		return firstOfMonth.AddDate(0, 1, -1)
	default:
		return start
	}
}
