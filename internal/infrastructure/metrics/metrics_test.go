package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(BlocksTotal.WithLabelValues("unspecified"))
	RecordBlock("")
	assert.Equal(t, before+1, testutil.ToFloat64(BlocksTotal.WithLabelValues("unspecified")))

	failed := testutil.ToFloat64(EventsPublished.WithLabelValues("match.created", "error"))
	RecordEvent("match.created", errors.New("broker down"))
	RecordEvent("match.created", nil)
	assert.Equal(t, failed+1, testutil.ToFloat64(EventsPublished.WithLabelValues("match.created", "error")))

	likes := testutil.ToFloat64(SwipesTotal.WithLabelValues("like"))
	RecordSwipe("like")
	assert.Equal(t, likes+1, testutil.ToFloat64(SwipesTotal.WithLabelValues("like")))
}
