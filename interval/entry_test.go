package interval

import (
	"strings"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestParseRegionString(t *testing.T) {
	tests := []struct {
		region  string
		seqname string
		start   uint64
		end     uint64
	}{
		{"chr1:1-1000", "chr1", 0, 1000},
		{"chr1:1,001-2,000", "chr1", 1000, 2000},
		{"chr1:1000", "chr1", 999, 1000},
		{"chr1", "chr1", 0, MaxPos},
		{"CP064350.1:50001-55000", "CP064350.1", 50000, 55000},
	}
	for _, tt := range tests {
		result, err := ParseRegionString(tt.region)
		expect.NoError(t, err)
		expect.EQ(t, result.Seqname, tt.seqname)
		expect.EQ(t, result.Start, tt.start)
		expect.EQ(t, result.End, tt.end)
	}
	for _, bad := range []string{"", ":1-5", "chr1:0-5", "chr1:10-5", "chr1:a-5", "chr1:0"} {
		_, err := ParseRegionString(bad)
		expect.True(t, err != nil, "region=%q", bad)
	}
}

func TestTokenize(t *testing.T) {
	var tokens [3][]byte
	n := Tokenize(tokens[:], []byte("  chr1 \t 10\t20\tignored"))
	expect.EQ(t, n, 3)
	expect.EQ(t, string(tokens[0]), "chr1")
	expect.EQ(t, string(tokens[1]), "10")
	expect.EQ(t, string(tokens[2]), "20")

	expect.EQ(t, Tokenize(tokens[:], []byte("chr1\t10")), 2)
	expect.EQ(t, Tokenize(tokens[:], []byte(" \t ")), 0)
}

func TestScanner(t *testing.T) {
	sc := NewScanner(strings.NewReader("chr1\t0\t5\nchr1\t5\t9\nchr2\t1\t2\n"))
	var got []Entry
	for sc.Scan() {
		got = append(got, sc.Entry())
	}
	require.NoError(t, sc.Err())
	expect.EQ(t, got, []Entry{{"chr1", 0, 5}, {"chr1", 5, 9}, {"chr2", 1, 2}})
	expect.EQ(t, got[0].String(), "chr1\t0\t5")
	expect.True(t, got[0].Touches(got[1]))
	expect.False(t, got[1].Touches(got[2]))
}

func TestScannerSkipsHeaders(t *testing.T) {
	in := "track name=peaks\nbrowser position chr1:1-100\n# comment\n\nchr1\t0\t5\n"
	sc := NewScanner(strings.NewReader(in))
	require.True(t, sc.Scan())
	expect.EQ(t, sc.Entry(), Entry{"chr1", 0, 5})
	expect.False(t, sc.Scan())
	require.NoError(t, sc.Err())
}

func TestScannerLongLine(t *testing.T) {
	// Extra columns far past bufio's default 64 KiB token limit.
	in := "chr1\t0\t5\t" + strings.Repeat("x", 100000) + "\nchr1\t5\t9\n"
	sc := NewScanner(strings.NewReader(in))
	var got []Entry
	for sc.Scan() {
		got = append(got, sc.Entry())
	}
	require.NoError(t, sc.Err())
	expect.EQ(t, got, []Entry{{"chr1", 0, 5}, {"chr1", 5, 9}})
}

func TestScannerBadCoordinate(t *testing.T) {
	sc := NewScanner(strings.NewReader("chr1\t0\t5\nchr1\tx\t9\n"))
	require.True(t, sc.Scan())
	expect.False(t, sc.Scan())
	err := sc.Err()
	expect.EQ(t, errors.Cause(err), ErrFormat)
	expect.EQ(t, err.Error(), `line 2: bad coordinate "x": interval: malformed line`)
}
