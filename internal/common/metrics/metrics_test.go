package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSuccess, Outcome(nil))
	assert.Equal(t, OutcomeFailure, Outcome(errors.New("boom")))
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(SearchCalls.WithLabelValues(OutcomeSkipped))
	SearchCalls.WithLabelValues(OutcomeSkipped).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(SearchCalls.WithLabelValues(OutcomeSkipped)))

	before = testutil.ToFloat64(StoreMutations.WithLabelValues("add_college", OutcomeSuccess))
	StoreMutations.WithLabelValues("add_college", OutcomeSuccess).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(StoreMutations.WithLabelValues("add_college", OutcomeSuccess)))
}
