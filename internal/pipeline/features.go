package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/minhvu-dn/weather-predict/internal/weather"
)

// FeatureRow is one reading augmented with derived time features and
// the next-step temperature target. TargetTemp is nil for the
// chronologically last row, whose successor does not exist yet.
type FeatureRow struct {
	weather.Reading
	Hour       int // 0-23, derived from the UTC timestamp
	DayOfWeek  int // Monday=0 .. Sunday=6
	TargetTemp *float64
}

// FeatureFrame is the full engineered view of the input readings,
// ascending by timestamp.
type FeatureFrame []FeatureRow

// TrainableFrame is the subset of a FeatureFrame usable for supervised
// training: target known and no missing sensor values.
type TrainableFrame []FeatureRow

// Engineer derives the feature frame and its trainable subset from raw
// readings. It sorts its own copy of the input ascending by timestamp,
// so callers may hand over store results in either order. The transform
// is pure: same input, same output, no hidden state.
func Engineer(readings []weather.Reading) (FeatureFrame, TrainableFrame) {
	if len(readings) == 0 {
		return FeatureFrame{}, TrainableFrame{}
	}

	ordered := make([]weather.Reading, len(readings))
	copy(ordered, readings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp.Before(ordered[j].Timestamp)
	})

	frame := make(FeatureFrame, 0, len(ordered))
	for i, r := range ordered {
		ts := r.Timestamp.UTC()
		row := FeatureRow{
			Reading:   r,
			Hour:      ts.Hour(),
			DayOfWeek: mondayIndexedWeekday(ts),
		}
		if i+1 < len(ordered) {
			target := ordered[i+1].Temperature
			row.TargetTemp = &target
		}
		frame = append(frame, row)
	}

	trainable := make(TrainableFrame, 0, len(frame))
	for _, row := range frame {
		if row.complete() {
			trainable = append(trainable, row)
		}
	}

	return frame, trainable
}

// complete reports whether the row can participate in training: the
// target must be known and no sensor value may be missing.
func (r FeatureRow) complete() bool {
	if r.TargetTemp == nil {
		return false
	}
	for _, v := range []float64{r.Temperature, r.Humidity, r.WindSpeed, *r.TargetTemp} {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Latest returns the most recent row of the frame, the one whose next
// temperature is still unknown. ok is false for an empty frame.
func (f FeatureFrame) Latest() (FeatureRow, bool) {
	if len(f) == 0 {
		return FeatureRow{}, false
	}
	return f[len(f)-1], true
}

// mondayIndexedWeekday maps time.Weekday (Sunday=0) to the Monday=0
// convention the model was historically trained with.
func mondayIndexedWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
