// Package bedgraph reads and writes bedGraph files: tab-separated
// "seqname start end score" lines with 0-based half-open coordinates, no
// header.  For example:
//
// chr1	0	5	0.0667
// chr1	5	10	-0.622
// chr2	0	5	1.5
//
// Lines beginning with '#', "track", or "browser" are skipped, as are blank
// lines.  Records of one chromosome must be contiguous in the file.
package bedgraph

import (
	"bufio"
	"context"
	"io"
	"strconv"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/tsv"
	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/grailbio/bio-track/interval"
	"github.com/grailbio/bio-track/track"
	"github.com/grailbio/bio-track/util"
	"github.com/pkg/errors"
)

// ErrFormat is returned for lines that do not hold exactly four fields of
// the expected types, and for files where a chromosome's records are split
// into more than one run.
var ErrFormat = errors.New("bedgraph: malformed input")

// Read parses a whole bedGraph stream.  Parsing stops at the first malformed
// line, and no partial track is returned.
func Read(r io.Reader) (*track.Track, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, interval.MaxLineSize)

	// One extra slot so that lines with too many fields are detected.
	var tokens [5][]byte
	var (
		records []track.Record
		lineIdx int
		prevChr string
		done    = map[string]bool{}
	)
	for scanner.Scan() {
		lineIdx++
		curLine := scanner.Bytes()
		nToken := interval.Tokenize(tokens[:], curLine)
		if nToken == 0 || interval.IsHeader(tokens[0]) {
			continue
		}
		if nToken != 4 {
			return nil, errors.Wrapf(ErrFormat, "line %d: want 4 fields, got %d", lineIdx, nToken)
		}
		start, err := interval.ParsePos(tokens[1])
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "line %d: bad start %q", lineIdx, tokens[1])
		}
		end, err := interval.ParsePos(tokens[2])
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "line %d: bad end %q", lineIdx, tokens[2])
		}
		score, err := strconv.ParseFloat(gunsafe.BytesToString(tokens[3]), 64)
		if err != nil {
			return nil, errors.Wrapf(ErrFormat, "line %d: bad score %q", lineIdx, tokens[3])
		}
		if prevChr != gunsafe.BytesToString(tokens[0]) {
			if prevChr != "" {
				done[prevChr] = true
			}
			// Must copy: the token refers to the scanner's buffer.
			prevChr = string(tokens[0])
			if done[prevChr] {
				return nil, errors.Wrapf(ErrFormat, "line %d: unsorted input (split chromosome %v)", lineIdx, prevChr)
			}
		}
		records = append(records, track.Record{
			Seqname: prevChr,
			Start:   start,
			End:     end,
			Score:   score,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "bedgraph: read after line %d", lineIdx)
	}
	return track.New(records), nil
}

// ReadPath is a wrapper for Read that takes a path instead of an io.Reader.
// "-" reads standard input; a .gz suffix is decompressed.
func ReadPath(ctx context.Context, path string) (t *track.Track, err error) {
	var in *util.Input
	if in, err = util.Open(ctx, path); err != nil {
		return
	}
	defer func() {
		if cerr := in.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if t, err = Read(in); err != nil {
		return nil, errors.Wrap(err, path)
	}
	log.Printf("bedgraph: loaded %d record(s) on %d contig(s) from %s", t.Len(), len(t.Contigs()), in.Path())
	return
}

// Write writes t as bedGraph.  Scores are printed in their shortest exact
// decimal form.
func Write(w io.Writer, t *track.Track) error {
	out := tsv.NewWriter(w)
	for i := 0; i < t.Len(); i++ {
		r := t.At(i)
		out.WriteString(r.Seqname)
		out.WriteString(strconv.FormatUint(r.Start, 10))
		out.WriteString(strconv.FormatUint(r.End, 10))
		out.WriteString(strconv.FormatFloat(r.Score, 'g', -1, 64))
		if err := out.EndLine(); err != nil {
			return err
		}
	}
	return out.Flush()
}

// WriteOpts configures WritePath.
type WriteOpts struct {
	// Parallelism is the number of bgzf compression goroutines used for .gz
	// outputs.  0 picks a default.
	Parallelism int
}

// DefaultWriteOpts is the default WritePath configuration.
var DefaultWriteOpts = WriteOpts{}

// WritePath is a wrapper for Write that takes a path.  "-" writes standard
// output; a .gz suffix is bgzf-compressed.
func WritePath(ctx context.Context, path string, t *track.Track, opts WriteOpts) (err error) {
	var out *util.Output
	if out, err = util.Create(ctx, path, opts.Parallelism); err != nil {
		return
	}
	defer func() {
		if cerr := out.Close(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err = Write(out, t); err != nil {
		return errors.Wrap(err, path)
	}
	log.Debug.Printf("bedgraph: wrote %d record(s) to %s", t.Len(), out.Path())
	return
}
