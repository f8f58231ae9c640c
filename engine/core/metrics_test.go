package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsAverageAndFPS(t *testing.T) {
	require.NoError(t, MetricsInitialize())

	// 1/128 s is exact in binary, which keeps the comparisons below exact
	const frame = 1.0 / 128.0

	// the average becomes available on the 30th frame
	for i := 0; i < int(AVG_COUNT); i++ {
		MetricsUpdate(frame)
	}
	fps, ms := MetricsFrame()
	assert.Equal(t, 7.8125, ms)
	assert.Zero(t, fps, "less than a second has been accumulated")

	// 128 frames add up to exactly one second; the 129th crosses it
	for i := 0; i < 129-int(AVG_COUNT); i++ {
		MetricsUpdate(frame)
	}
	assert.Equal(t, 128.0, MetricsFPS())
	assert.Equal(t, 7.8125, MetricsFrameTime())
}
