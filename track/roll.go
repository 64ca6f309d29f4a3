package track

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/bio-track/window"
	"github.com/pkg/errors"
)

// RollOpts configures Roll.
type RollOpts struct {
	// WindowSize is the number of positions in each window.  It must be odd.
	WindowSize int
	// Circular wraps each contig around at its ends.  Otherwise the first and
	// last scores are replicated.
	Circular bool
	// Stat selects the rolling statistic.
	Stat window.Stat
	// RecomputeEvery, if positive, recomputes the rolling-mean window sum from
	// scratch every RecomputeEvery positions.  Ignored for medians.
	RecomputeEvery int
}

// DefaultRollOpts is the default Roll configuration.
var DefaultRollOpts = RollOpts{
	WindowSize: 3,
	Circular:   false,
	Stat:       window.StatMean,
}

// PaddedScores returns the scores of the whole track padded by pad values at
// each end.  See window.Pad.
func (t *Track) PaddedScores(pad int, circular bool) ([]float64, error) {
	return window.Pad(t.Scores(), pad, circular)
}

// Roll computes a centered rolling statistic over each contig separately and
// returns a track with the same intervals and the statistic as score.
// Contigs appear in the order returned by Contigs.
func (t *Track) Roll(opts RollOpts) (*Track, error) {
	if err := window.Check(opts.WindowSize); err != nil {
		return nil, err
	}
	pad := window.PadSize(opts.WindowSize)
	records := make([]Record, 0, len(t.records))
	for _, contig := range t.Contigs() {
		ctg := t.contig(contig)
		padded, err := ctg.PaddedScores(pad, opts.Circular)
		if err != nil {
			return nil, errors.Wrapf(err, "roll %s", contig)
		}
		values, err := window.Compute(opts.Stat, padded, opts.WindowSize, opts.RecomputeEvery)
		if err != nil {
			return nil, errors.Wrapf(err, "roll %s", contig)
		}
		if len(values) != ctg.Len() {
			log.Panicf("track.Roll: %s: %d windows for %d records", contig, len(values), ctg.Len())
		}
		records = append(records, ctg.withScores(values).records...)
		log.Debug.Printf("track.Roll: %s: %d record(s), %v window %d", contig, ctg.Len(), opts.Stat, opts.WindowSize)
	}
	return New(records), nil
}

// RollMean is Roll with StatMean.
func (t *Track) RollMean(windowSize int, circular bool) (*Track, error) {
	return t.Roll(RollOpts{WindowSize: windowSize, Circular: circular, Stat: window.StatMean})
}

// RollMedian is Roll with StatMedian.
func (t *Track) RollMedian(windowSize int, circular bool) (*Track, error) {
	return t.Roll(RollOpts{WindowSize: windowSize, Circular: circular, Stat: window.StatMedian})
}
