package interval

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/pkg/errors"
)

// ErrFormat is returned when a line does not hold the expected number of
// fields, or a coordinate is not an unsigned integer.
var ErrFormat = errors.New("interval: malformed line")

// MaxLineSize is the longest line the BED and bedGraph readers accept.
const MaxLineSize = 16 * 1024 * 1024

var (
	trackPrefix   = []byte("track")
	browserPrefix = []byte("browser")
)

// IsHeader reports whether a line whose first field is tok is a comment or a
// UCSC track/browser line.
func IsHeader(tok []byte) bool {
	return tok[0] == '#' || bytes.Equal(tok, trackPrefix) || bytes.Equal(tok, browserPrefix)
}

// Tokenize identifies up to the first len(tokens) tokens from curLine,
// returning the number of tokens saved.  Any (group of) characters <= ' ' is
// treated as a delimiter.
func Tokenize(tokens [][]byte, curLine []byte) int {
	posEnd := 0
	lineLen := len(curLine)
	for tokenIdx := range tokens {
		// These simple loops are better than any of the standard library
		// string-split functions for the handful of columns we read.
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if curLine[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if curLine[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = curLine[pos:posEnd]
	}
	return len(tokens)
}

// ParsePos parses a decimal coordinate token.  The error is strconv's;
// callers wrap it with their own format error and line number.
func ParsePos(token []byte) (uint64, error) {
	return strconv.ParseUint(gunsafe.BytesToString(token), 10, 64)
}

// Scanner reads the first three columns of a BED stream, one interval at a
// time.  Columns past the third are ignored; blank lines, comments, and UCSC
// track/browser lines are skipped.
//
//   sc := interval.NewScanner(r)
//   for sc.Scan() {
//     e := sc.Entry()
//     ...
//   }
//   if err := sc.Err(); err != nil { ... }
type Scanner struct {
	sc      *bufio.Scanner
	tokens  [3][]byte
	lineIdx int
	entry   Entry
	err     error
}

// NewScanner creates a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, MaxLineSize)
	return &Scanner{sc: sc}
}

// Scan reads the next interval.  It returns false at end of stream or on the
// first error.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for s.sc.Scan() {
		s.lineIdx++
		curLine := s.sc.Bytes()
		nToken := Tokenize(s.tokens[:], curLine)
		if nToken == 0 || IsHeader(s.tokens[0]) {
			continue
		}
		if nToken != 3 {
			s.err = errors.Wrapf(ErrFormat, "line %d: want at least 3 fields, got %d", s.lineIdx, nToken)
			return false
		}
		start, err := ParsePos(s.tokens[1])
		if err != nil {
			s.err = errors.Wrapf(ErrFormat, "line %d: bad coordinate %q", s.lineIdx, s.tokens[1])
			return false
		}
		end, err := ParsePos(s.tokens[2])
		if err != nil {
			s.err = errors.Wrapf(ErrFormat, "line %d: bad coordinate %q", s.lineIdx, s.tokens[2])
			return false
		}
		// Reuse the previous name when it's unchanged; the token bytes are
		// overwritten by the next Scan.
		if s.entry.Seqname != gunsafe.BytesToString(s.tokens[0]) {
			s.entry.Seqname = string(s.tokens[0])
		}
		s.entry.Start = start
		s.entry.End = end
		return true
	}
	if err := s.sc.Err(); err != nil {
		s.err = errors.Wrapf(err, "interval: read after line %d", s.lineIdx)
	}
	return false
}

// Entry returns the interval read by the last successful Scan.
func (s *Scanner) Entry() Entry {
	return s.entry
}

// Err returns the first error encountered, or nil at a clean end of stream.
func (s *Scanner) Err() error {
	return s.err
}
