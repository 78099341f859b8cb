package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStatsUpdate(t *testing.T) {
	s := NewStats()

	s.Update(1, 100, 500*time.Millisecond)
	require.Equal(t, 1, s.TotalGenerations)
	require.Equal(t, 100, s.Population)
	require.Equal(t, 100.0, s.AveragePopulation)
	require.InDelta(t, 2.0, s.GenerationsPerSecond, 1e-9)

	s.Update(2, 0, 0)
	require.InDelta(t, 90.0, s.AveragePopulation, 1e-9)
	require.InDelta(t, 2.0, s.GenerationsPerSecond, 1e-9, "zero duration keeps the previous rate")
	require.GreaterOrEqual(t, s.Runtime(), time.Duration(0))
}
