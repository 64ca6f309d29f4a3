// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package window

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidWindow is returned for window sizes that have no unique middle
	// element (even or zero).
	ErrInvalidWindow = errors.New("window: window size must be odd")
	// ErrTooShort is returned when a score vector cannot be padded.
	ErrTooShort = errors.New("window: too few scores to pad")
)

// Stat identifies the statistic computed over each window.
type Stat int

const (
	// StatMean selects the rolling arithmetic mean.
	StatMean Stat = iota
	// StatMedian selects the rolling median.
	StatMedian
)

// String implements fmt.Stringer.
func (s Stat) String() string {
	switch s {
	case StatMean:
		return "mean"
	case StatMedian:
		return "median"
	}
	return fmt.Sprintf("Stat(%d)", int(s))
}

// ParseStat parses "mean" or "median" (case-insensitive).
func ParseStat(s string) (Stat, error) {
	switch strings.ToLower(s) {
	case "mean":
		return StatMean, nil
	case "median":
		return StatMedian, nil
	}
	return 0, errors.Errorf("window: unknown statistic %q", s)
}

// Check returns ErrInvalidWindow unless windowSize is a positive odd number.
func Check(windowSize int) error {
	if windowSize <= 0 || windowSize%2 == 0 {
		return errors.Wrapf(ErrInvalidWindow, "got %d", windowSize)
	}
	return nil
}

// PadSize returns the number of values added to each end of a contig for the
// given (odd) window size.
func PadSize(windowSize int) int {
	return (windowSize - 1) / 2
}

// Pad extends scores by pad values on each side.  With circular set, the
// contig wraps around: the last pad scores are prepended and the first pad
// scores appended.  Otherwise scores[0] and scores[n-1] are replicated.
//
// The result has length len(scores) + 2*pad; window t of width 2*pad+1 over
// it is centered on scores[t].
func Pad(scores []float64, pad int, circular bool) ([]float64, error) {
	n := len(scores)
	if n == 0 {
		return nil, errors.Wrap(ErrTooShort, "empty score vector")
	}
	if circular && pad > n {
		return nil, errors.Wrapf(ErrTooShort, "circular pad %d exceeds %d scores", pad, n)
	}
	padded := make([]float64, 0, n+2*pad)
	if circular {
		padded = append(padded, scores[n-pad:]...)
		padded = append(padded, scores...)
		padded = append(padded, scores[:pad]...)
		return padded, nil
	}
	for i := 0; i < pad; i++ {
		padded = append(padded, scores[0])
	}
	padded = append(padded, scores...)
	for i := 0; i < pad; i++ {
		padded = append(padded, scores[n-1])
	}
	return padded, nil
}

// Mean returns the mean of every width-windowSize window of padded, in order.
//
// Only the first window is summed; each later mean is derived from the
// previous one as mean + (incoming - outgoing)/windowSize.  The cost is O(n)
// regardless of window size, but rounding error accumulates along the
// contig.  MeanRecompute bounds that drift.
func Mean(padded []float64, windowSize int) ([]float64, error) {
	return MeanRecompute(padded, windowSize, 0)
}

// MeanRecompute is Mean, except that the window sum is recomputed from
// scratch every `every` windows.  every <= 0 never recomputes, which is
// exactly Mean.
func MeanRecompute(padded []float64, windowSize, every int) ([]float64, error) {
	if err := Check(windowSize); err != nil {
		return nil, err
	}
	nWin := len(padded) - windowSize + 1
	if nWin <= 0 {
		return nil, nil
	}
	w := float64(windowSize)
	means := make([]float64, nWin)
	var (
		mean     float64
		outgoing float64 // first element of the previous window
	)
	for t := 0; t < nWin; t++ {
		win := padded[t : t+windowSize]
		if t == 0 || (every > 0 && t%every == 0) {
			var sum float64
			for _, v := range win {
				sum += v
			}
			mean = sum / w
		} else {
			mean += (win[windowSize-1] - outgoing) / w
		}
		outgoing = win[0]
		means[t] = mean
	}
	return means, nil
}

// Median returns the median of every width-windowSize window of padded, in
// order.  Each window is sorted independently; since windowSize is odd the
// median is a single element and no averaging happens.
func Median(padded []float64, windowSize int) ([]float64, error) {
	if err := Check(windowSize); err != nil {
		return nil, err
	}
	nWin := len(padded) - windowSize + 1
	if nWin <= 0 {
		return nil, nil
	}
	medians := make([]float64, nWin)
	buf := make([]float64, windowSize)
	mid := windowSize / 2
	for t := range medians {
		copy(buf, padded[t:t+windowSize])
		sort.Float64s(buf)
		medians[t] = buf[mid]
	}
	return medians, nil
}

// Compute dispatches to Mean, MeanRecompute, or Median.
func Compute(stat Stat, padded []float64, windowSize, recomputeEvery int) ([]float64, error) {
	switch stat {
	case StatMean:
		return MeanRecompute(padded, windowSize, recomputeEvery)
	case StatMedian:
		return Median(padded, windowSize)
	}
	return nil, errors.Errorf("window: unsupported statistic %v", stat)
}

// Roll pads scores for windowSize and computes stat over every window.  The
// result has one value per input score.
func Roll(scores []float64, windowSize int, circular bool, stat Stat, recomputeEvery int) ([]float64, error) {
	if err := Check(windowSize); err != nil {
		return nil, err
	}
	padded, err := Pad(scores, PadSize(windowSize), circular)
	if err != nil {
		return nil, err
	}
	return Compute(stat, padded, windowSize, recomputeEvery)
}
