// Package scoring implements the deterministic scoring engine: timezone
// distance, degree-ladder arithmetic, weighted skill coverage, experience
// interval merging, and weighted aggregation. Semantic judgments (field
// similarity, skill matching, experience relevance) are delegated to
// injected oracle collaborators; everything else is exact arithmetic.
package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	stderrors "resume-workers/internal/common/errors"
)

// TimezoneMatch is the result of comparing two timezone offsets.
type TimezoneMatch struct {
	Score             float64 `json:"score"`
	DifferenceInHours float64 `json:"differenceInHours"`
}

// ParseOffset converts "GMT+5:30" or "UTC-4" into a float offset like 5.5
// or -4.0. Strings without a GMT or UTC prefix are rejected.
func ParseOffset(tz string) (float64, error) {
	var rest string
	switch {
	case strings.Contains(tz, "GMT"):
		rest = tz[strings.Index(tz, "GMT")+3:]
	case strings.Contains(tz, "UTC"):
		rest = tz[strings.Index(tz, "UTC")+3:]
	default:
		return 0, stderrors.NewParseError(stderrors.ErrCodeTimezoneParseFailed,
			fmt.Sprintf("unknown timezone format: %q", tz))
	}

	sign := 1.0
	if strings.HasPrefix(rest, "-") {
		sign = -1.0
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "+") {
		rest = rest[1:]
	}

	var offset float64
	if hs, ms, ok := strings.Cut(rest, ":"); ok {
		hours, err := strconv.ParseFloat(hs, 64)
		if err != nil {
			return 0, stderrors.NewParseError(stderrors.ErrCodeTimezoneParseFailed,
				fmt.Sprintf("bad hour in %q", tz))
		}
		mins, err := strconv.ParseFloat(ms, 64)
		if err != nil {
			return 0, stderrors.NewParseError(stderrors.ErrCodeTimezoneParseFailed,
				fmt.Sprintf("bad minutes in %q", tz))
		}
		offset = sign * (hours + mins/60)
	} else {
		hours, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return 0, stderrors.NewParseError(stderrors.ErrCodeTimezoneParseFailed,
				fmt.Sprintf("bad offset in %q", tz))
		}
		offset = sign * hours
	}

	return offset, nil
}

// CircularDistance returns the minimal distance in hours between two offsets
// on the 24-hour circle. Symmetric, always in [0,12].
func CircularDistance(a, b float64) float64 {
	a = math.Mod(a+24, 24)
	b = math.Mod(b+24, 24)
	d := math.Abs(a - b)
	return math.Min(d, 24-d)
}

// TimezoneScore maps a circular distance to 0-100 linearly: same offset is
// 100, twelve hours apart is 0. A crude proxy for collaboration overlap,
// kept linear on purpose.
func TimezoneScore(distanceHours float64) float64 {
	score := (1 - distanceHours/12) * 100
	return math.Max(0, math.Min(100, score))
}

// MatchTimezones parses both offsets and scores their circular distance.
func MatchTimezones(applicantTz, jobTz string) (TimezoneMatch, error) {
	a, err := ParseOffset(applicantTz)
	if err != nil {
		return TimezoneMatch{}, err
	}
	b, err := ParseOffset(jobTz)
	if err != nil {
		return TimezoneMatch{}, err
	}

	diff := CircularDistance(a, b)
	return TimezoneMatch{
		Score:             TimezoneScore(diff),
		DifferenceInHours: diff,
	}, nil
}
