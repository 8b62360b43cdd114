package scoring

import "context"

// degreeValues is the fixed degree ladder. Unknown degree strings rank 0.
var degreeValues = map[string]int{
	"None":        0,
	"High School": 1,
	"Bachelor":    2,
	"Master":      3,
	"PhD":         4,
}

// DegreeValue returns the ladder rank for a degree string, 0 when unknown.
func DegreeValue(degree string) int {
	return degreeValues[degree]
}

// FieldMatcher judges how similar two field-of-study strings are, 0-100.
type FieldMatcher interface {
	FieldSimilarity(ctx context.Context, jobField, applicantField string) (float64, error)
}

// DegreeScore compares ladder ranks. Overqualification earns an uncapped
// bonus of 10 points per rung; underqualification scales linearly. A job
// that requires no degree is always fully satisfied, which also keeps the
// ratio branch away from dividing by zero.
func DegreeScore(applicantDegree, requiredDegree string) float64 {
	a := DegreeValue(applicantDegree)
	r := DegreeValue(requiredDegree)

	if r == 0 {
		return 100
	}
	if a > r {
		return 100 + float64(a-r)*10
	}
	return float64(a) / float64(r) * 100
}

// EducationScorer combines degree-ladder arithmetic with oracle-judged
// field similarity.
type EducationScorer struct {
	fields FieldMatcher
}

func NewEducationScorer(fields FieldMatcher) *EducationScorer {
	return &EducationScorer{fields: fields}
}

// Score returns degree*0.6 + field*0.4. Oracle failures propagate.
func (s *EducationScorer) Score(ctx context.Context, applicantDegree, applicantField, requiredDegree, jobField string) (float64, error) {
	degreeScore := DegreeScore(applicantDegree, requiredDegree)

	fieldScore, err := s.fields.FieldSimilarity(ctx, jobField, applicantField)
	if err != nil {
		return 0, err
	}

	return degreeScore*0.6 + fieldScore*0.4, nil
}
