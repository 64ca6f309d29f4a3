package interval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
)

// MaxPos is the largest representable coordinate.  Filtering with
// [0, MaxPos] keeps every record of a chromosome.
const MaxPos = math.MaxUint64

// Entry represents a single interval, with 0-based coordinates.
type Entry struct {
	Seqname string
	Start   uint64
	End     uint64
}

// String renders the entry as a BED line without the trailing newline.
func (e Entry) String() string {
	return fmt.Sprintf("%s\t%d\t%d", e.Seqname, e.Start, e.End)
}

// Touches returns whether next starts exactly where e ends on the same
// chromosome.
func (e Entry) Touches(next Entry) bool {
	return e.Seqname == next.Seqname && next.Start == e.End
}

// writeEntry appends e as one BED row.
func writeEntry(w *tsv.Writer, e Entry) error {
	w.WriteString(e.Seqname)
	w.WriteString(strconv.FormatUint(e.Start, 10))
	w.WriteString(strconv.FormatUint(e.End, 10))
	return w.EndLine()
}

// ParseRegionString parses a region string of one of the forms
//   [contig ID]:[1-based first pos]-[last pos]
//   [contig ID]:[1-based pos]
//   [contig ID]
// returning a contig ID and 0-based interval boundaries.  The interval
// [0, MaxPos] is returned if there is no positional restriction.
func ParseRegionString(region string) (result Entry, err error) {
	if len(region) == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty region string")
		return
	}
	colonPos := strings.LastIndexByte(region, ':')
	if colonPos == -1 {
		result.Seqname = region
		result.End = MaxPos
		return
	}
	if colonPos == 0 {
		err = fmt.Errorf("interval.ParseRegionString: empty contig ID")
		return
	}
	result.Seqname = region[0:colonPos]
	rangeStr := strings.Replace(region[colonPos+1:], ",", "", -1)
	dashPos := strings.IndexByte(rangeStr, '-')
	if dashPos == -1 {
		var pos1 uint64
		if pos1, err = strconv.ParseUint(rangeStr, 10, 64); err != nil {
			return
		}
		if pos1 == 0 {
			err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", rangeStr)
			return
		}
		result.Start = pos1 - 1
		result.End = pos1
		return
	}
	start1Str := rangeStr[:dashPos]
	endStr := rangeStr[dashPos+1:]
	var start1 uint64
	if start1, err = strconv.ParseUint(start1Str, 10, 64); err != nil {
		return
	}
	if start1 == 0 {
		err = fmt.Errorf("interval.ParseRegionString: position %v in region string out of range", start1Str)
		return
	}
	var end0 uint64
	if end0, err = strconv.ParseUint(endStr, 10, 64); err != nil {
		return
	}
	if end0 < start1 {
		err = fmt.Errorf("interval.ParseRegionString: invalid range string %v", rangeStr)
		return
	}
	result.Start = start1 - 1
	result.End = end0
	return
}
