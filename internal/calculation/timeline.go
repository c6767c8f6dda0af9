package calculation

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/wealthpath/planner/pkg/money"
)

// YearContext carries the per-year derived values handed to events and the
// cash-flow step. It is rebuilt every iteration and never stored.
type YearContext struct {
	Year       int
	StartYear  int
	YearIndex  int
	Factor     decimal.Decimal // inflation factor for the current year
	NextFactor decimal.Decimal // factor for the following year, for forward projections
}

// NewYearContext derives the context for one bucket of the loop.
func NewYearContext(year, startYear int, inflationRate decimal.Decimal) YearContext {
	index := year - startYear
	return YearContext{
		Year:       year,
		StartYear:  startYear,
		YearIndex:  index,
		Factor:     money.InflationFactor(inflationRate, index),
		NextFactor: money.InflationFactor(inflationRate, index+1),
	}
}

// YearBucket holds the events scheduled to resolve at the start of one
// simulated year. Events apply in the order they were scheduled.
type YearBucket struct {
	Year   int
	Events []Event
}

// Resolve applies every scheduled event against the state in order.
func (b *YearBucket) Resolve(state *SimulationState, ctx YearContext) error {
	for _, e := range b.Events {
		if err := e.Apply(state, ctx); err != nil {
			return err
		}
	}
	return nil
}

// Timeline is an ordered, contiguous sequence of year buckets over a closed
// range. Buckets are fixed at construction; events may be added before the
// simulation runs.
type Timeline struct {
	StartYear int
	EndYear   int
	buckets   []*YearBucket
}

// BuildRange produces one bucket per integer year in [start, end]. An
// inverted range is a RangeError.
func BuildRange(start, end int) (*Timeline, error) {
	if end < start {
		return nil, &RangeError{Start: start, End: end}
	}
	t := &Timeline{StartYear: start, EndYear: end}
	for year := start; year <= end; year++ {
		t.buckets = append(t.buckets, &YearBucket{Year: year})
	}
	return t, nil
}

// ScheduleEvent appends an event to the bucket for the given year. A year
// outside the timeline's range is a NotFoundError.
func (t *Timeline) ScheduleEvent(year int, event Event) error {
	if year < t.StartYear || year > t.EndYear {
		return &NotFoundError{Kind: "timeline year", Key: strconv.Itoa(year)}
	}
	bucket := t.buckets[year-t.StartYear]
	bucket.Events = append(bucket.Events, event)
	return nil
}

// ScheduleEventRange schedules the same event in every bucket of the closed
// range [start, end].
func (t *Timeline) ScheduleEventRange(start, end int, event Event) error {
	if end < start {
		return &RangeError{Start: start, End: end}
	}
	for year := start; year <= end; year++ {
		if err := t.ScheduleEvent(year, event); err != nil {
			return err
		}
	}
	return nil
}

// Buckets returns the year buckets in ascending order.
func (t *Timeline) Buckets() []*YearBucket {
	return t.buckets
}

// Len returns the number of simulated years.
func (t *Timeline) Len() int {
	return len(t.buckets)
}
