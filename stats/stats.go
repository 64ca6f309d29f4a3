// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package stats implements whole-track order statistics and normalizations
// over score vectors: median, mean, mean-centered MAD, robust z-scores, and
// counts-per-million.
//
// None of the functions here know about contigs; callers that want
// per-contig statistics must slice the scores themselves.
package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/pkg/errors"
)

var (
	// ErrEmpty is returned when a statistic is requested over zero values.
	ErrEmpty = errors.New("stats: no values")
	// ErrDegenerate is returned when a normalization would divide by zero,
	// e.g. CPM of an all-zero track.
	ErrDegenerate = errors.New("stats: degenerate track")
)

// RobustZScale is the consistency constant applied by RobustZ.
const RobustZScale = 0.6745

// Million is the CPM scale factor.
const Million = 1000000.0

// Median returns the middle element of the sorted values, or the mean of the
// two middle elements when len(values) is even.  values is not modified.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	sample := mstats.Sample{Xs: append([]float64(nil), values...)}
	return sample.Sort().Quantile(0.5), nil
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	return mstats.Sample{Xs: values}.Mean(), nil
}

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// MAD returns median(|x - mean(values)|).
//
// Note that the deviations are taken from the mean, not the median.
func MAD(values []float64) (float64, error) {
	mean, err := Mean(values)
	if err != nil {
		return 0, err
	}
	devs := make([]float64, len(values))
	for i, v := range values {
		devs[i] = math.Abs(v - mean)
	}
	return Median(devs)
}

// RobustZ returns 0.6745 * (x - median) / mad.  A zero mad is not checked;
// the result follows IEEE-754 (±Inf, or NaN when x == median).
func RobustZ(x, median, mad float64) float64 {
	return RobustZScale * (x - median) / mad
}

// CPM rescales scores so that they sum to one million.  It returns
// ErrDegenerate if the scores sum to zero.
func CPM(scores []float64) ([]float64, error) {
	sum := Sum(scores)
	if sum == 0 {
		return nil, errors.Wrapf(ErrDegenerate, "cpm: %d scores sum to zero", len(scores))
	}
	cpm := make([]float64, len(scores))
	for i, s := range scores {
		cpm[i] = s / sum * Million
	}
	return cpm, nil
}
