package scoring

// Weights are the caller-supplied category weights. They should sum to 1;
// nothing enforces that, so the overall scale drifts with the sum. Accepted
// platform behavior, not corrected here.
type Weights struct {
	Education  float64
	Skills     float64
	Timezone   float64
	Experience float64
}

// Overall combines the four sub-scores into one weighted score.
func Overall(education, skills, timezone, experience float64, w Weights) float64 {
	return education*w.Education +
		skills*w.Skills +
		timezone*w.Timezone +
		experience*w.Experience
}
