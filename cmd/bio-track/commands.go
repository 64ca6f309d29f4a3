package main

import (
	"context"
	"fmt"
	"io"

	"github.com/grailbio/base/log"
	"github.com/grailbio/bio-track/encoding/bedgraph"
	"github.com/grailbio/bio-track/interval"
	"github.com/grailbio/bio-track/track"
	"github.com/pkg/errors"
)

func filterTrack(ctx context.Context, inPath, outPath, region string, opts bedgraph.WriteOpts) error {
	entry, err := interval.ParseRegionString(region)
	if err != nil {
		return err
	}
	t, err := bedgraph.ReadPath(ctx, inPath)
	if err != nil {
		return err
	}
	filtered := t.FilterRegion(entry)
	log.Printf("filter: %d of %d record(s) within %s", filtered.Len(), t.Len(), region)
	return bedgraph.WritePath(ctx, outPath, filtered, opts)
}

func rollTrack(ctx context.Context, inPath, outPath string, rollOpts track.RollOpts, opts bedgraph.WriteOpts) error {
	t, err := bedgraph.ReadPath(ctx, inPath)
	if err != nil {
		return err
	}
	rolled, err := t.Roll(rollOpts)
	if err != nil {
		return err
	}
	log.Printf("roll: %v over %d-record windows, circular=%v", rollOpts.Stat, rollOpts.WindowSize, rollOpts.Circular)
	return bedgraph.WritePath(ctx, outPath, rolled, opts)
}

func robustZTrack(ctx context.Context, inPath, outPath string, opts bedgraph.WriteOpts) error {
	t, err := bedgraph.ReadPath(ctx, inPath)
	if err != nil {
		return err
	}
	z, err := t.RobustZ()
	if err != nil {
		return err
	}
	return bedgraph.WritePath(ctx, outPath, z, opts)
}

func cpmTrack(ctx context.Context, inPath, outPath string, opts bedgraph.WriteOpts) error {
	t, err := bedgraph.ReadPath(ctx, inPath)
	if err != nil {
		return err
	}
	// The track is discarded after writing, so rescale it in place.
	if err := t.ToCPM(); err != nil {
		return err
	}
	return bedgraph.WritePath(ctx, outPath, t, opts)
}

// info writes one "contig<TAB>length" line per contig, followed by the
// resolution when the track has at least two records.
func info(ctx context.Context, inPath string, w io.Writer) error {
	t, err := bedgraph.ReadPath(ctx, inPath)
	if err != nil {
		return err
	}
	for _, contig := range t.Contigs() {
		n, err := t.ContigLength(contig)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\n", contig, n); err != nil {
			return err
		}
	}
	res, err := t.Resolution()
	if errors.Cause(err) == track.ErrEmptyStore {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "#resolution\t%d\n", res)
	return err
}

func checksum(ctx context.Context, inPath string, w io.Writer) error {
	t, err := bedgraph.ReadPath(ctx, inPath)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%016x\t%d\n", t.Checksum(), t.Len())
	return err
}
