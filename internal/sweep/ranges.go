// Package sweep repeats convergence runs across needle lengths, line
// distances and seeds, and summarises how the final estimates spread.
package sweep

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxValues caps how many values a single list or range may expand to.
const maxValues = 10000

// ParseCSVFloat64s parses a comma-separated list of float64 values.
// Returns nil, nil for empty input strings.
func ParseCSVFloat64s(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float '%s': %w", p, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid float '%s': not finite", p)
		}
		out = append(out, v)
	}
	return out, nil
}

// GenerateRange returns min, min+step, … up to max inclusive, rounded to
// three decimals. Invalid or oversized ranges yield nil.
func GenerateRange(min, max, step float64) []float64 {
	if !finite(min, max, step) || step <= 0 || min > max {
		return nil
	}
	expectedCount := int((max-min)/step) + 1
	if expectedCount < 0 || expectedCount > maxValues {
		return nil
	}

	var result []float64
	for i := 0; ; i++ {
		v := math.Round((min+float64(i)*step)*1000) / 1000
		if v > max || len(result) >= maxValues {
			break
		}
		result = append(result, v)
	}
	return result
}

// ParseParamList parses either "min:max:step" or a comma-separated list.
func ParseParamList(s string) ([]float64, error) {
	if s == "" {
		return nil, nil
	}
	if !strings.Contains(s, ":") {
		return ParseCSVFloat64s(s)
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid range format %q: expected min:max:step", s)
	}
	var bounds [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid range value %q: %w", p, err)
		}
		bounds[i] = v
	}
	if !finite(bounds[:]...) {
		return nil, fmt.Errorf("invalid range %q: bounds must be finite", s)
	}
	if bounds[2] <= 0 {
		return nil, fmt.Errorf("step must be positive, got %g", bounds[2])
	}
	return GenerateRange(bounds[0], bounds[1], bounds[2]), nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// ParseSeeds parses "first:last" (inclusive) or a comma-separated list of
// unsigned seeds.
func ParseSeeds(s string) ([]uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if first, last, ok := strings.Cut(s, ":"); ok {
		lo, err := strconv.ParseUint(strings.TrimSpace(first), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", first, err)
		}
		hi, err := strconv.ParseUint(strings.TrimSpace(last), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed %q: %w", last, err)
		}
		if hi < lo {
			return nil, fmt.Errorf("invalid seed range %q: last before first", s)
		}
		if hi-lo >= maxValues {
			return nil, fmt.Errorf("seed range %q too large (max %d seeds)", s, maxValues)
		}
		out := make([]uint64, 0, hi-lo+1)
		for i := uint64(0); i <= hi-lo; i++ {
			out = append(out, lo+i)
		}
		return out, nil
	}

	parts := strings.Split(s, ",")
	out := make([]uint64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid seed '%s': %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
