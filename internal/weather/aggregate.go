package weather

import "time"

// DefaultForecastDays is the number of daily tiles the dashboard shows.
const DefaultForecastDays = 5

// AggregateDaily folds a 3-hour forecast series into one summary per calendar
// day, in the order days are first seen in the input, truncated to maxDays.
//
// Buckets are keyed by the sample timestamp converted to tz; two samples land
// in the same bucket iff their converted dates are calendar-equal. Within a
// bucket temp_min only decreases, temp_max and pop only increase, and the
// icon/description stay whatever the first sample of that day carried.
// Callers are expected to supply samples in chronological order; the input is
// not re-sorted.
func AggregateDaily(samples []ForecastSample, tz *time.Location, maxDays int) []DailySummary {
	if len(samples) == 0 {
		return nil
	}
	if tz == nil {
		tz = time.UTC
	}

	type dayKey string

	byDay := make(map[dayKey]*DailySummary)
	order := make([]dayKey, 0, maxDays)

	for _, s := range samples {
		ts := s.Timestamp.In(tz)
		k := dayKey(ts.Format("2006-01-02"))

		existing, ok := byDay[k]
		if !ok {
			byDay[k] = &DailySummary{
				Date:        ts,
				TempMin:     s.TempMin,
				TempMax:     s.TempMax,
				Icon:        s.Icon,
				Description: s.Description,
				Pop:         s.Pop,
			}
			order = append(order, k)
			continue
		}

		if s.TempMin < existing.TempMin {
			existing.TempMin = s.TempMin
		}
		if s.TempMax > existing.TempMax {
			existing.TempMax = s.TempMax
		}
		if s.Pop > existing.Pop {
			existing.Pop = s.Pop
		}
	}

	if maxDays > 0 && len(order) > maxDays {
		order = order[:maxDays]
	}

	out := make([]DailySummary, 0, len(order))
	for _, k := range order {
		out = append(out, *byDay[k])
	}
	return out
}
