package fuzzy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "frontend", "frontend", 100},
		{"both empty", "", "", 100},
		{"one empty", "api", "", 0},
		{"disjoint", "abc", "xyz", 0},
		// LCS("react", "redux") = "re" -> 2*2/10
		{"partial", "react", "redux", 40},
		// LCS("kitten", "sitting") = "ittn" -> 2*4/13
		{"classic", "kitten", "sitting", 800.0 / 13.0},
		{"runes not bytes", "café", "cafe", 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Ratio(tt.a, tt.b), 1e-9)
		})
	}
}

func TestRatio_Symmetric(t *testing.T) {
	assert.InDelta(t, Ratio("deployment", "deploy"), Ratio("deploy", "deployment"), 1e-9)
}

func TestBestRatio(t *testing.T) {
	assert.InDelta(t, 100, BestRatio("react", []string{"vue", "react", "angular"}), 1e-9)
	assert.InDelta(t, 40, BestRatio("react", []string{"redux", "xyz"}), 1e-9)
	assert.Equal(t, 0.0, BestRatio("react", nil))
}
