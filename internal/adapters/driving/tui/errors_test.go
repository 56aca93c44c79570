package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_Distinct(t *testing.T) {
	errs := []error{ErrMissingContextService, ErrMissingRenderer, ErrMissingGraph}
	for i := range errs {
		assert.Contains(t, errs[i].Error(), "tui:")
		for j := i + 1; j < len(errs); j++ {
			assert.NotEqual(t, errs[i], errs[j])
		}
	}
}
