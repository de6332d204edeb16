package hours

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantKind      DayKind
		wantIntervals []Interval
	}{
		{"empty means no data", "", DayNoData, nil},
		{"whitespace only", "   ", DayNoData, nil},
		{"closed", "closed", DayClosed, nil},
		{"closed mixed case", " Closed ", DayClosed, nil},
		{"by appointment", "by appointment", DayByAppointment, nil},
		{"open 24 hours", "open 24 hours", DayOpen24h, nil},
		{"open 24 hours mixed case", "Open 24 Hours", DayOpen24h, nil},
		{"midnight range alias", "0:00-23:59", DayOpen24h, nil},
		{
			"single range", "9:00-17:00", DayIntervals,
			[]Interval{{Start: 9, End: 17}},
		},
		{
			"bare hours", "9-17", DayIntervals,
			[]Interval{{Start: 9, End: 17}},
		},
		{
			"split meal service", "8-9,12-13:30,16-17:30", DayIntervals,
			[]Interval{{8, 9}, {12, 13.5}, {16, 17.5}},
		},
		{
			"meridian range", "9am-5:30pm", DayIntervals,
			[]Interval{{9, 17.5}},
		},
		{
			"malformed segment dropped", "9-17,banana,18-20", DayIntervals,
			[]Interval{{9, 17}, {18, 20}},
		},
		{
			"out of domain dropped", "25-30", DayIntervals,
			[]Interval{},
		},
		{
			"missing dash dropped", "9 to 17", DayIntervals,
			[]Interval{},
		},
		{
			"overnight range dropped", "22:00-6:00", DayIntervals,
			[]Interval{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.raw)
			if got.Kind != tt.wantKind {
				t.Fatalf("Classify(%q).Kind = %v, want %v", tt.raw, got.Kind, tt.wantKind)
			}
			if tt.wantKind != DayIntervals {
				return
			}
			if len(got.Intervals) == 0 && len(tt.wantIntervals) == 0 {
				return
			}
			if !reflect.DeepEqual(got.Intervals, tt.wantIntervals) {
				t.Errorf("Classify(%q).Intervals = %v, want %v", tt.raw, got.Intervals, tt.wantIntervals)
			}
		})
	}
}
