package track

import (
	"github.com/grailbio/bio-track/stats"
	"github.com/pkg/errors"
)

// GetCPM returns the scores rescaled to counts-per-million over the whole
// track.  The track is not modified.
func (t *Track) GetCPM() ([]float64, error) {
	return stats.CPM(t.Scores())
}

// ToCPM rescales the scores of t to counts-per-million, in place.  On error t
// is left unchanged.
func (t *Track) ToCPM() error {
	cpm, err := t.GetCPM()
	if err != nil {
		return err
	}
	for i := range t.records {
		t.records[i].Score = cpm[i]
	}
	return nil
}

// Median returns the median score of the whole track.
func (t *Track) Median() (float64, error) {
	m, err := stats.Median(t.Scores())
	if err != nil {
		return 0, errors.Wrap(ErrEmptyStore, "median")
	}
	return m, nil
}

// Mean returns the mean score of the whole track.
func (t *Track) Mean() (float64, error) {
	m, err := stats.Mean(t.Scores())
	if err != nil {
		return 0, errors.Wrap(ErrEmptyStore, "mean")
	}
	return m, nil
}

// RobustZ returns a track whose scores are robust z-scores,
// 0.6745 * (x - median) / MAD, with a single median and MAD computed over all
// contigs.  A zero MAD (e.g. a constant track) yields stats.ErrDegenerate
// rather than infinite scores.
func (t *Track) RobustZ() (*Track, error) {
	scores := t.Scores()
	median, err := t.Median()
	if err != nil {
		return nil, err
	}
	mad, err := stats.MAD(scores)
	if err != nil {
		return nil, errors.Wrap(ErrEmptyStore, "mad")
	}
	if mad == 0 {
		return nil, errors.Wrapf(stats.ErrDegenerate, "robust z: zero MAD over %d scores", len(scores))
	}
	for i, x := range scores {
		scores[i] = stats.RobustZ(x, median, mad)
	}
	return t.withScores(scores), nil
}
