package interval

import (
	"context"
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/bio-track/util"
)

// Merger folds a stream of intervals into contiguous regions.  It holds at
// most one open region; a region is emitted as soon as an interval arrives
// that cannot extend it.
//
// An interval extends the open region only if it is on the same chromosome
// and starts exactly at the region's end.  Anything else (a new chromosome,
// a gap, or an overlap) closes the region and opens a new one at the
// incoming interval.
type Merger struct {
	emit    func(Entry) error
	open    Entry
	hasOpen bool
	nIn     int
	nOut    int
}

// NewMerger returns a Merger that passes each finished region to emit.
func NewMerger(emit func(Entry) error) *Merger {
	return &Merger{emit: emit}
}

// Add feeds the next interval.  The error, if any, comes from emit.
func (m *Merger) Add(e Entry) error {
	m.nIn++
	if !m.hasOpen {
		m.open = e
		m.hasOpen = true
		return nil
	}
	if m.open.Touches(e) {
		m.open.End = e.End
		return nil
	}
	if err := m.flush(); err != nil {
		return err
	}
	m.open = e
	m.hasOpen = true
	return nil
}

// Close emits the open region, if any.  The Merger may be reused afterward.
func (m *Merger) Close() error {
	if !m.hasOpen {
		return nil
	}
	return m.flush()
}

func (m *Merger) flush() error {
	m.hasOpen = false
	m.nOut++
	return m.emit(m.open)
}

// NumIn returns the number of intervals added so far.
func (m *Merger) NumIn() int { return m.nIn }

// NumOut returns the number of regions emitted so far.
func (m *Merger) NumOut() int { return m.nOut }

// Merge reads a BED stream from r and writes the merged regions to w as
// three-column BED.  Regions are written as soon as they close.
func Merge(r io.Reader, w io.Writer) error {
	out := tsv.NewWriter(w)
	m := NewMerger(func(e Entry) error {
		return writeEntry(out, e)
	})
	sc := NewScanner(r)
	for sc.Scan() {
		if err := m.Add(sc.Entry()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if err := m.Close(); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	log.Debug.Printf("interval.Merge: %d interval(s) merged into %d region(s)", m.NumIn(), m.NumOut())
	return nil
}

// MergePath is a wrapper for Merge that takes paths instead of streams.
// "-" names stdin or stdout.
func MergePath(ctx context.Context, inPath, outPath string) (err error) {
	var in *util.Input
	if in, err = util.Open(ctx, inPath); err != nil {
		return
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	var out *util.Output
	if out, err = util.Create(ctx, outPath, 0); err != nil {
		return
	}
	defer func() {
		if cerr := out.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Merge(in, out)
}
