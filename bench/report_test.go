package bench

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	timings := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	rep, err := Aggregate("gpu", "label", timings, 10)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rep.Min)
	assert.Equal(t, 10.0, rep.Max)
	assert.Equal(t, 5.5, rep.Mean)
	assert.Equal(t, 6.0, rep.Mid)
	assert.InDelta(t, 2.8723, rep.StdDev, 1e-4)
}

func TestAggregateMidIsUnsorted(t *testing.T) {
	rep, err := Aggregate("cpu", "-", []float64{5, 1, 9, 3, 7}, 5)
	require.NoError(t, err)
	// Sorted median would be 5.
	assert.Equal(t, 9.0, rep.Mid)
	assert.Equal(t, 1.0, rep.Min)
	assert.Equal(t, 9.0, rep.Max)
}

func TestAggregateSingleRun(t *testing.T) {
	rep, err := Aggregate("cpu", "-", []float64{3.25}, 1)
	require.NoError(t, err)
	assert.Equal(t, Report{Name: "cpu", Label: "-", Min: 3.25, Max: 3.25, Mid: 3.25, Mean: 3.25}, rep)
}

func TestAggregateRejectsIncomplete(t *testing.T) {
	_, err := Aggregate("gpu", "-", []float64{1, 2, 3}, 10)
	assert.ErrorContains(t, err, "need 10")

	_, err = Aggregate("gpu", "-", []float64{1, math.NaN()}, 2)
	assert.Error(t, err)

	_, err = Aggregate("gpu", "-", []float64{math.Inf(1)}, 1)
	assert.Error(t, err)

	_, err = Aggregate("gpu", "-", nil, 0)
	assert.Error(t, err)
}

func TestReportString(t *testing.T) {
	rep := Report{Name: "gpu", Label: "width=8 height=8", Min: 1, Max: 10, Mid: 6, Mean: 5.5, StdDev: 2.87228}
	assert.Equal(t, "name=gpu width=8 height=8 min=1.00 max=10.00 mid=6.00 mean=5.50 stdev=2.87", rep.String())
}

func TestAppendReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	require.NoError(t, AppendReport(path, "first"))
	require.NoError(t, AppendReport(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestAppendReportOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.txt")
	err := AppendReport(path, "line")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
