// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package track

import (
	"strconv"

	"github.com/grailbio/bio-track/interval"
	"github.com/pkg/errors"
)

var (
	// ErrEmptyContig is returned when a contig has no records in the track.
	ErrEmptyContig = errors.New("track: contig not found")
	// ErrEmptyStore is returned when a track has too few records for the
	// requested operation.
	ErrEmptyStore = errors.New("track: not enough records")
)

// Record is one line of a bedGraph: a score attached to the 0-based
// half-open interval [Start, End) of Seqname.
type Record struct {
	Seqname string
	Start   uint64
	End     uint64
	Score   float64
}

// String renders the record as a bedGraph line without the trailing newline.
// The score is printed in its shortest exact decimal form.
func (r Record) String() string {
	buf := make([]byte, 0, len(r.Seqname)+48)
	buf = append(buf, r.Seqname...)
	buf = append(buf, '\t')
	buf = strconv.AppendUint(buf, r.Start, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendUint(buf, r.End, 10)
	buf = append(buf, '\t')
	buf = strconv.AppendFloat(buf, r.Score, 'g', -1, 64)
	return string(buf)
}

// Track is an ordered, in-memory collection of records, in file order.
//
// Records of one contig are expected to form a single contiguous run, sorted
// by position; Track does not check this.  Contig grouping is derived from
// the order in which seqnames first appear.
//
// Every transform returns a new Track, except ToCPM, which rescales the
// scores of the receiver in place.
type Track struct {
	records []Record
}

// New creates a Track holding records.  The Track takes ownership of the
// slice.
func New(records []Record) *Track {
	return &Track{records: records}
}

// Len returns the number of records.
func (t *Track) Len() int {
	return len(t.records)
}

// At returns the i'th record.  It panics if i is out of range.
func (t *Track) At(i int) Record {
	return t.records[i]
}

// Records returns a copy of the records.
func (t *Track) Records() []Record {
	out := make([]Record, len(t.records))
	copy(out, t.records)
	return out
}

// Scores returns the score column, in track order.
func (t *Track) Scores() []float64 {
	scores := make([]float64, len(t.records))
	for i, r := range t.records {
		scores[i] = r.Score
	}
	return scores
}

// Filter returns the records of seqname whose interval lies within
// [lo, hi]: Start >= lo and End <= hi.  Relative order is preserved.  An
// empty result is not an error.
func (t *Track) Filter(seqname string, lo, hi uint64) *Track {
	var records []Record
	for _, r := range t.records {
		if r.Seqname == seqname && r.Start >= lo && r.End <= hi {
			records = append(records, r)
		}
	}
	return New(records)
}

// FilterRegion is Filter with the bounds taken from e.
func (t *Track) FilterRegion(e interval.Entry) *Track {
	return t.Filter(e.Seqname, e.Start, e.End)
}

// contig returns all records of seqname.
func (t *Track) contig(seqname string) *Track {
	return t.Filter(seqname, 0, interval.MaxPos)
}

// Contigs returns the distinct seqnames in order of first appearance.
func (t *Track) Contigs() []string {
	var (
		contigs []string
		seen    = map[string]bool{}
		prev    string
	)
	for i, r := range t.records {
		// Consecutive records almost always share a contig.
		if i > 0 && r.Seqname == prev {
			continue
		}
		prev = r.Seqname
		if !seen[r.Seqname] {
			seen[r.Seqname] = true
			contigs = append(contigs, r.Seqname)
		}
	}
	return contigs
}

// MaxEnd returns the largest End in the track.
func (t *Track) MaxEnd() (uint64, error) {
	if len(t.records) == 0 {
		return 0, ErrEmptyStore
	}
	var maxEnd uint64
	for _, r := range t.records {
		if r.End > maxEnd {
			maxEnd = r.End
		}
	}
	return maxEnd, nil
}

// ContigLength returns the largest End among the records of seqname.
func (t *Track) ContigLength(seqname string) (uint64, error) {
	n, err := t.contig(seqname).MaxEnd()
	if err != nil {
		return 0, errors.Wrapf(ErrEmptyContig, "%s", seqname)
	}
	return n, nil
}

// Resolution returns the bin width, inferred from the first two records as
// record[1].Start - record[0].Start.  The whole track is assumed to share
// one bin width.
func (t *Track) Resolution() (uint64, error) {
	if len(t.records) < 2 {
		return 0, errors.Wrapf(ErrEmptyStore, "resolution needs 2 records, have %d", len(t.records))
	}
	return t.records[1].Start - t.records[0].Start, nil
}

// withScores returns a copy of t with the given scores, which must have
// length t.Len().
func (t *Track) withScores(scores []float64) *Track {
	records := make([]Record, len(t.records))
	for i, r := range t.records {
		r.Score = scores[i]
		records[i] = r
	}
	return New(records)
}
