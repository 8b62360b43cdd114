package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverall(t *testing.T) {
	w := Weights{Education: 0.2, Skills: 0.5, Timezone: 0.1, Experience: 0.2}
	got := Overall(90, 80, 100, 110, w)
	assert.InDelta(t, 90*0.2+80*0.5+100*0.1+110*0.2, got, 1e-9)
}

func TestOverallUnnormalizedWeightsDrift(t *testing.T) {
	// Weights that do not sum to 1 scale the output. Accepted behavior.
	w := Weights{Education: 1, Skills: 1, Timezone: 1, Experience: 1}
	assert.InDelta(t, 400.0, Overall(100, 100, 100, 100, w), 1e-9)
}

func TestOverallZeroWeights(t *testing.T) {
	assert.Equal(t, 0.0, Overall(90, 80, 100, 110, Weights{}))
}
