package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Interval is a half-open [Start, End) range of wall-clock minutes within one day.
type Interval struct {
	Start types.TimeOfDay
	End   types.TimeOfDay
}

// NewInterval builds an interval, reporting false when it would be empty.
func NewInterval(start, end types.TimeOfDay) (Interval, bool) {
	i := Interval{Start: start, End: end}
	return i, !i.IsEmpty()
}

// IsEmpty reports whether the interval contains no minutes.
func (i Interval) IsEmpty() bool {
	return i.Start >= i.End
}

// Duration returns the length in minutes.
func (i Interval) Duration() int {
	if i.IsEmpty() {
		return 0
	}
	return int(i.End - i.Start)
}

// Intersect returns the common part of both intervals.
func (i Interval) Intersect(other Interval) (Interval, bool) {
	start, end := i.Start, i.End
	if other.Start > start {
		start = other.Start
	}
	if other.End < end {
		end = other.End
	}
	return NewInterval(start, end)
}

// Covers reports whether other lies entirely within i.
func (i Interval) Covers(other Interval) bool {
	return i.Start <= other.Start && i.End >= other.End
}

// Overlaps reports whether the half-open intervals share at least one minute.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && i.End > other.Start
}

// Touches is like Overlaps but also true for intervals that meet end to start.
func (i Interval) Touches(other Interval) bool {
	return i.Start <= other.End && i.End >= other.Start
}

// OnDate converts the interval to absolute times on the calendar day of date.
func (i Interval) OnDate(date time.Time) (time.Time, time.Time) {
	return i.Start.OnDate(date), i.End.OnDate(date)
}

func (i Interval) String() string {
	return i.Start.String() + "-" + i.End.String()
}

// TimeRangesOverlap is the half-open overlap test used for bookings and blocks.
func TimeRangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
