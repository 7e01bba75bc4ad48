package bench

import (
	"fmt"
	"math"
	"os"
)

// Report summarises the timings of one variant. Durations are milliseconds.
type Report struct {
	Name  string
	Label string
	Min   float64
	Max   float64
	// Mid is the sample taken at index len/2 of the timings in run order. It
	// is not sorted first, so it is only a median when runs are stable.
	Mid    float64
	Mean   float64
	StdDev float64
}

func (r Report) String() string {
	return fmt.Sprintf("name=%s %s min=%.2f max=%.2f mid=%.2f mean=%.2f stdev=%.2f",
		r.Name, r.Label, r.Min, r.Max, r.Mid, r.Mean, r.StdDev)
}

// Aggregate computes a report from a complete sequence of repeat timings.
func Aggregate(name, label string, timings []float64, repeat int) (Report, error) {
	if repeat < 1 {
		return Report{}, fmt.Errorf("invalid repeat count: %d", repeat)
	}
	if len(timings) != repeat {
		return Report{}, fmt.Errorf("have %d timings, need %d", len(timings), repeat)
	}

	rep := Report{
		Name:  name,
		Label: label,
		Min:   timings[0],
		Max:   timings[0],
	}

	var sum float64
	for i, t := range timings {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Report{}, fmt.Errorf("timing %d is not a number: %v", i, t)
		}
		sum += t
		if rep.Min > t {
			rep.Min = t
		}
		if rep.Max < t {
			rep.Max = t
		}
	}
	rep.Mean = sum / float64(repeat)

	var sq float64
	for _, t := range timings {
		sq += (t - rep.Mean) * (t - rep.Mean)
	}
	rep.StdDev = math.Sqrt(sq / float64(repeat))

	rep.Mid = timings[repeat/2]

	return rep, nil
}

// AppendReport adds line to the report file at path, creating it if needed.
func AppendReport(path, line string) (err error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("could not open report %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close report %q: %w", path, closeErr)
		}
	}()

	if _, err = f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("could not write report %q: %w", path, err)
	}
	return nil
}
