package window

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smallScores = []float64{
	0.06669717398000229,
	0.06669717398000229,
	0.06669717398000229,
	-0.622378649894243,
	-0.8331850071880074,
	-0.48281724264735265,
	-1.1957696376198523,
	-0.386565212080191,
	-0.1719770035449314,
}

func TestPad(t *testing.T) {
	padded, err := Pad(smallScores, 2, true)
	require.NoError(t, err)
	expect.EQ(t, padded, []float64{
		-0.386565212080191,
		-0.1719770035449314,
		0.06669717398000229,
		0.06669717398000229,
		0.06669717398000229,
		-0.622378649894243,
		-0.8331850071880074,
		-0.48281724264735265,
		-1.1957696376198523,
		-0.386565212080191,
		-0.1719770035449314,
		0.06669717398000229,
		0.06669717398000229,
	})

	padded, err = Pad(smallScores, 2, false)
	require.NoError(t, err)
	expect.EQ(t, padded, []float64{
		0.06669717398000229,
		0.06669717398000229,
		0.06669717398000229,
		0.06669717398000229,
		0.06669717398000229,
		-0.622378649894243,
		-0.8331850071880074,
		-0.48281724264735265,
		-1.1957696376198523,
		-0.386565212080191,
		-0.1719770035449314,
		-0.1719770035449314,
		-0.1719770035449314,
	})
}

func TestPadProperties(t *testing.T) {
	scores := []float64{1, 2, 3, 4, 5, 6, 7}
	for pad := 0; pad <= len(scores); pad++ {
		circ, err := Pad(scores, pad, true)
		require.NoError(t, err)
		expect.EQ(t, len(circ), len(scores)+2*pad)
		expect.EQ(t, circ[:pad], scores[len(scores)-pad:])
		expect.EQ(t, circ[len(circ)-pad:], scores[:pad])
		expect.EQ(t, circ[pad:pad+len(scores)], scores)

		edge, err := Pad(scores, pad, false)
		require.NoError(t, err)
		expect.EQ(t, len(edge), len(scores)+2*pad)
		for i := 0; i < pad; i++ {
			expect.EQ(t, edge[i], scores[0])
			expect.EQ(t, edge[len(edge)-1-i], scores[len(scores)-1])
		}
	}
}

func TestPadErrors(t *testing.T) {
	_, err := Pad(nil, 1, false)
	expect.EQ(t, errors.Cause(err), ErrTooShort)
	_, err = Pad([]float64{1, 2}, 3, true)
	expect.EQ(t, errors.Cause(err), ErrTooShort)
	// Edge padding can replicate beyond the contig length.
	padded, err := Pad([]float64{1, 2}, 3, false)
	require.NoError(t, err)
	expect.EQ(t, padded, []float64{1, 1, 1, 1, 2, 2, 2, 2})
}

func TestCheck(t *testing.T) {
	for _, w := range []int{1, 3, 5, 101} {
		expect.NoError(t, Check(w))
	}
	for _, w := range []int{0, 2, 4, -1, 100} {
		expect.EQ(t, errors.Cause(Check(w)), ErrInvalidWindow, "w=%d", w)
	}
}

func directMeans(padded []float64, w int) []float64 {
	var out []float64
	for t := 0; t+w <= len(padded); t++ {
		var sum float64
		for _, v := range padded[t : t+w] {
			sum += v
		}
		out = append(out, sum/float64(w))
	}
	return out
}

func directMedians(padded []float64, w int) []float64 {
	var out []float64
	for t := 0; t+w <= len(padded); t++ {
		win := append([]float64(nil), padded[t:t+w]...)
		sort.Float64s(win)
		out = append(out, win[w/2])
	}
	return out
}

func randomScores(r *rand.Rand, n int) []float64 {
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = r.NormFloat64() * 10
	}
	return scores
}

func TestMeanMatchesDirect(t *testing.T) {
	r := rand.New(rand.NewSource(0))
	for _, n := range []int{1, 2, 7, 50, 1000} {
		scores := randomScores(r, n)
		for _, w := range []int{1, 3, 5, 11} {
			for _, circular := range []bool{true, false} {
				pad := PadSize(w)
				if circular && pad > n {
					continue
				}
				padded, err := Pad(scores, pad, circular)
				require.NoError(t, err)
				got, err := Mean(padded, w)
				require.NoError(t, err)
				want := directMeans(padded, w)
				require.Equal(t, len(want), len(got))
				require.Equal(t, n, len(got))
				for i := range want {
					assert.InDelta(t, want[i], got[i], 1e-5, "n=%d w=%d circular=%v i=%d", n, w, circular, i)
				}
			}
		}
	}
}

func TestMeanRecompute(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	padded, err := Pad(randomScores(r, 5000), 3, false)
	require.NoError(t, err)
	want := directMeans(padded, 7)
	for _, every := range []int{0, 1, 10, 100} {
		got, err := MeanRecompute(padded, 7, every)
		require.NoError(t, err)
		for i := range want {
			assert.InDelta(t, want[i], got[i], 1e-9)
		}
	}
	plain, err := Mean(padded, 7)
	require.NoError(t, err)
	noRecompute, err := MeanRecompute(padded, 7, 0)
	require.NoError(t, err)
	expect.EQ(t, plain, noRecompute)
}

// TestMeanEdgeFixture is worked by hand: with w=3 and edge padding, the
// first window is three copies of the first score.
func TestMeanEdgeFixture(t *testing.T) {
	scores := []float64{0.0667, 0.0667, 0.0667, -0.833, -1.196, -0.386, -0.172}
	got, err := Roll(scores, 3, false, StatMean, 0)
	require.NoError(t, err)
	want := []float64{
		0.0667,
		0.0667,
		(0.0667 + 0.0667 - 0.833) / 3,
		(0.0667 - 0.833 - 1.196) / 3,
		(-0.833 - 1.196 - 0.386) / 3,
		(-1.196 - 0.386 - 0.172) / 3,
		(-0.386 - 0.172 - 0.172) / 3,
	}
	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-5, "i=%d", i)
	}
	assert.InDelta(t, -0.2332, got[2], 1e-9)
	assert.InDelta(t, -0.6541, got[3], 1e-9)
	assert.InDelta(t, -0.805, got[4], 1e-9)
}

func TestMedianMatchesDirect(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, n := range []int{1, 3, 20, 200} {
		scores := randomScores(r, n)
		for _, w := range []int{1, 3, 9} {
			for _, circular := range []bool{true, false} {
				pad := PadSize(w)
				if circular && pad > n {
					continue
				}
				padded, err := Pad(scores, pad, circular)
				require.NoError(t, err)
				got, err := Median(padded, w)
				require.NoError(t, err)
				expect.EQ(t, got, directMedians(padded, w))
			}
		}
	}
}

func TestMedianFixture(t *testing.T) {
	got, err := Roll([]float64{5, 1, 4, 2, 3}, 3, true, StatMedian, 0)
	require.NoError(t, err)
	// Windows: {3,5,1} {5,1,4} {1,4,2} {4,2,3} {2,3,5}
	expect.EQ(t, got, []float64{3, 4, 2, 3, 3})

	got, err = Roll([]float64{5, 1, 4, 2, 3}, 3, false, StatMedian, 0)
	require.NoError(t, err)
	// Windows: {5,5,1} {5,1,4} {1,4,2} {4,2,3} {2,3,3}
	expect.EQ(t, got, []float64{5, 4, 2, 3, 3})
}

func TestEvenWindowRejected(t *testing.T) {
	for _, stat := range []Stat{StatMean, StatMedian} {
		_, err := Roll([]float64{1, 2, 3, 4}, 4, false, stat, 0)
		expect.EQ(t, errors.Cause(err), ErrInvalidWindow)
		_, err = Compute(stat, []float64{1, 2, 3, 4}, 2, 0)
		expect.EQ(t, errors.Cause(err), ErrInvalidWindow)
	}
}

func TestParseStat(t *testing.T) {
	for _, stat := range []Stat{StatMean, StatMedian} {
		got, err := ParseStat(stat.String())
		expect.NoError(t, err)
		expect.EQ(t, got, stat)
	}
	got, err := ParseStat("MEDIAN")
	expect.NoError(t, err)
	expect.EQ(t, got, StatMedian)
	_, err = ParseStat("mode")
	expect.True(t, err != nil)
}
