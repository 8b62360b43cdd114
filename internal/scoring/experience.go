package scoring

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	stderrors "resume-workers/internal/common/errors"
	"resume-workers/internal/models"
)

// monthValues maps extractor month names to 1-12. Unspecified months
// ("None", empty) default to January so a bare year still counts.
var monthValues = map[string]int{
	"January": 1, "February": 2, "March": 3, "April": 4,
	"May": 5, "June": 6, "July": 7, "August": 8,
	"September": 9, "October": 10, "November": 11, "December": 12,
}

// RelevanceTagger asks the oracle which experience periods are relevant to
// the target job title. It returns the same periods with Relevant set; this
// is the only semantic step in experience scoring.
type RelevanceTagger interface {
	TagRelevance(ctx context.Context, periods []models.ExperiencePeriod, jobTitle string) ([]models.ExperiencePeriod, error)
}

// ExperienceScore is the output of one experience pass.
type ExperienceScore struct {
	Score             float64
	YearsOfExperience float64
	Periods           []models.ExperiencePeriod
}

// ExperienceScorer merges relevant employment intervals and scores total
// duration against the job's requirement. The now func resolves "Present"
// end dates, so output shifts over time as ongoing employment keeps
// counting.
type ExperienceScorer struct {
	tagger RelevanceTagger
	now    func() time.Time
}

func NewExperienceScorer(tagger RelevanceTagger, now func() time.Time) *ExperienceScorer {
	if now == nil {
		now = time.Now
	}
	return &ExperienceScorer{tagger: tagger, now: now}
}

type monthInterval struct {
	start, end int
}

// parseMonth accepts a month name, a numeric string, or the None sentinel.
func parseMonth(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "none") {
		return 1, nil
	}
	if m, ok := monthValues[raw]; ok {
		return m, nil
	}
	m, err := strconv.Atoi(raw)
	if err != nil || m < 1 || m > 12 {
		return 0, stderrors.NewParseError(stderrors.ErrCodePeriodParseFailed,
			fmt.Sprintf("bad month: %q", raw))
	}
	return m, nil
}

// monthIndex converts a period boundary to year*12+month. For end
// boundaries, the Present sentinel resolves to the evaluation date.
func (s *ExperienceScorer) monthIndex(year, month string, isEnd bool) (int, error) {
	year = strings.TrimSpace(year)
	if isEnd && strings.EqualFold(year, "present") {
		now := s.now()
		return now.Year()*12 + int(now.Month()), nil
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return 0, stderrors.NewParseError(stderrors.ErrCodePeriodParseFailed,
			fmt.Sprintf("bad year: %q", year))
	}
	m, err := parseMonth(month)
	if err != nil {
		return 0, err
	}
	return y*12 + m, nil
}

// mergeIntervals collapses overlapping and touching intervals. Sorting by
// start and extending while next.start <= current.end also swallows
// contained intervals, so simultaneous jobs are never double-counted.
// Idempotent: merging an already-merged set is a no-op.
func mergeIntervals(intervals []monthInterval) []monthInterval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]monthInterval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	merged := []monthInterval{sorted[0]}
	for _, next := range sorted[1:] {
		cur := &merged[len(merged)-1]
		if next.start <= cur.end {
			if next.end > cur.end {
				cur.end = next.end
			}
		} else {
			merged = append(merged, next)
		}
	}
	return merged
}

// Score tags relevance via the oracle, merges the relevant periods into
// non-overlapping month intervals, and scores total duration. Meeting the
// requirement earns 100 plus an uncapped 3-point bonus per extra year;
// falling short scales linearly. A required value of 0 always lands in the
// bonus branch because total years can never be negative, so no division
// by zero is reachable there.
func (s *ExperienceScorer) Score(ctx context.Context, periods []models.ExperiencePeriod, requiredYears int, jobTitle string) (*ExperienceScore, error) {
	tagged, err := s.tagger.TagRelevance(ctx, periods, jobTitle)
	if err != nil {
		return nil, stderrors.NewOracleError(stderrors.ErrCodeExperienceTagFailed, err)
	}

	var intervals []monthInterval
	for _, p := range tagged {
		if !p.Relevant {
			continue
		}
		start, err := s.monthIndex(p.StartYear, p.StartMonth, false)
		if err != nil {
			return nil, err
		}
		end, err := s.monthIndex(p.EndYear, p.EndMonth, true)
		if err != nil {
			return nil, err
		}
		if end < start {
			return nil, stderrors.NewParseError(stderrors.ErrCodePeriodParseFailed,
				fmt.Sprintf("period ends before it starts: %s %s-%s", p.JobTitle, p.StartYear, p.EndYear))
		}
		intervals = append(intervals, monthInterval{start: start, end: end})
	}

	if len(intervals) == 0 {
		return &ExperienceScore{Score: 0, YearsOfExperience: 0, Periods: tagged}, nil
	}

	totalMonths := 0
	for _, iv := range mergeIntervals(intervals) {
		totalMonths += iv.end - iv.start
	}
	years := float64(totalMonths/12) + float64(totalMonths%12)/12

	var score float64
	if years >= float64(requiredYears) {
		score = 100 + (years-float64(requiredYears))*3
	} else {
		score = years / float64(requiredYears) * 100
	}

	return &ExperienceScore{
		Score:             score,
		YearsOfExperience: years,
		Periods:           tagged,
	}, nil
}
