// Package hours derives open/closed status from a resource's weekly schedule.
//
// A schedule is a map of lowercase weekday names to free-text hour strings as
// entered by resource maintainers ("9:00-17:00", "closed", "by appointment",
// "8-9,12-13:30"). The package classifies each day, evaluates the current
// instant against today's intervals, and searches forward for the next opening
// when today offers none. Results are plain values; nothing here touches the
// store, the network, or the UI.
//
// All computations are pure and the clock is injected, so every function is
// safe for concurrent use and deterministic under test. The *At variants take
// an explicit instant; the bare variants read the system clock once per call.
//
// Malformed schedule text never produces an error: unparseable segments are
// dropped and the status degrades to the "Call to confirm hours" fallback.
package hours

import "time"

// Schedule maps a lowercase weekday name ("monday" .. "sunday") to the raw
// hours text for that day. Missing keys mean no data for that day.
type Schedule map[string]string

// Color is the traffic-light classification shown next to a resource.
type Color string

const (
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorOrange Color = "orange"
	ColorRed    Color = "red"
	ColorGray   Color = "gray"
)

// Status is the displayable result of evaluating a schedule at an instant.
type Status struct {
	IsOpen bool   `json:"isOpen"`
	Text   string `json:"text"`
	Color  Color  `json:"color"`
}

// Interval is one open window within a single day, in fractional hours.
// Start and End are in [0, 24) with Start <= End.
type Interval struct {
	Start float64
	End   float64
}

// IsOpenNow reports whether the resource is open at this moment.
func IsOpenNow(schedule Schedule) bool {
	return IsOpenAt(schedule, time.Now())
}

// GetStatus evaluates the schedule against the current system clock.
func GetStatus(schedule Schedule) Status {
	return StatusAt(schedule, time.Now())
}

// NextOpenTime describes the next opening relative to the current system clock.
func NextOpenTime(schedule Schedule) string {
	return NextOpenAt(schedule, time.Now())
}

// IsOpenAt reports whether the schedule is open at the given instant.
func IsOpenAt(schedule Schedule, now time.Time) bool {
	return StatusAt(schedule, now).IsOpen
}

var dayNames = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

func dayKey(d time.Weekday) string {
	return dayNames[int(d)]
}

// clockHours converts an instant to fractional hours since local midnight.
func clockHours(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
}
