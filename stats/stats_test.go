package stats

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{[]float64{3}, 3},
		{[]float64{5, 1, 3}, 3},
		{[]float64{4, 1, 3, 2}, 2.5},
		{[]float64{-1, -1, 7, 7}, 3},
		{[]float64{0.5, -2, 9, 1, 1}, 1},
	}
	for _, test := range tests {
		in := append([]float64(nil), test.values...)
		got, err := Median(in)
		expect.NoError(t, err)
		assert.InDelta(t, test.want, got, 1e-12, "values=%v", test.values)
		// The caller's slice must be left in its original order.
		expect.EQ(t, in, test.values)
	}
	_, err := Median(nil)
	expect.EQ(t, errors.Cause(err), ErrEmpty)
}

func TestMedianMatchesSorted(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for n := 1; n <= 40; n++ {
		values := make([]float64, n)
		for i := range values {
			values[i] = r.NormFloat64() * 10
		}
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		want := sorted[n/2]
		if n%2 == 0 {
			want = (sorted[n/2-1] + sorted[n/2]) / 2
		}
		in := append([]float64(nil), values...)
		got, err := Median(in)
		expect.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9, "n=%d", n)
		expect.EQ(t, in, values)

		mean, err := Mean(values)
		expect.NoError(t, err)
		assert.InDelta(t, Sum(values)/float64(n), mean, 1e-9, "n=%d", n)
	}
}

func TestMean(t *testing.T) {
	got, err := Mean([]float64{1, 2, 3, 4})
	expect.NoError(t, err)
	expect.EQ(t, got, 2.5)
	_, err = Mean([]float64{})
	expect.EQ(t, errors.Cause(err), ErrEmpty)
}

// TestMADIsMeanCentered checks a vector whose mean and median differ, so the
// two MAD conventions give different answers.
func TestMADIsMeanCentered(t *testing.T) {
	values := []float64{1, 2, 3, 4, 100}
	// mean = 22, |x - 22| = {21, 20, 19, 18, 78}, median = 20.
	got, err := MAD(values)
	expect.NoError(t, err)
	assert.InDelta(t, 20.0, got, 1e-12)

	// The median-centered variant would be median({2, 1, 0, 1, 97}) = 1.
	expect.True(t, math.Abs(got-1.0) > 1)

	_, err = MAD(nil)
	expect.EQ(t, errors.Cause(err), ErrEmpty)
}

func TestRobustZ(t *testing.T) {
	assert.InDelta(t, 0.6745, RobustZ(3, 2, 1), 1e-12)
	assert.InDelta(t, -1.349, RobustZ(0, 2, 1), 1e-12)

	// Zero MAD is left to IEEE-754.
	expect.True(t, math.IsInf(RobustZ(3, 2, 0), 1))
	expect.True(t, math.IsInf(RobustZ(1, 2, 0), -1))
	expect.True(t, math.IsNaN(RobustZ(2, 2, 0)))
}

func TestCPM(t *testing.T) {
	scores := []float64{1, 1, 1, 2, 3, 2}
	cpm, err := CPM(scores)
	expect.NoError(t, err)
	want := []float64{100000, 100000, 100000, 200000, 300000, 200000}
	for i := range want {
		assert.InDelta(t, want[i], cpm[i], 1e-6)
	}
	assert.InDelta(t, Million, Sum(cpm), 1e-6)
	// Input untouched.
	expect.EQ(t, scores, []float64{1, 1, 1, 2, 3, 2})

	_, err = CPM([]float64{0, 0, 0})
	expect.EQ(t, errors.Cause(err), ErrDegenerate)
	_, err = CPM([]float64{-1, 1})
	expect.EQ(t, errors.Cause(err), ErrDegenerate)
}
