// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package util contains the path-or-stream plumbing shared by the track
// readers, writers, and the interval merger.
package util

import (
	"context"
	"io"
	"os"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/hts/bgzf"
	"github.com/klauspost/compress/gzip"
)

// Stdio is the path naming standard input (when reading) or standard output
// (when writing).  The empty path means the same thing.
const Stdio = "-"

// IsStdio returns whether path names stdin/stdout instead of a file.
func IsStdio(path string) bool {
	return path == "" || path == Stdio
}

// Input is an opened source of text lines.
type Input struct {
	io.Reader
	path string
	f    file.File
	gz   *gzip.Reader
}

// Open opens path for reading.  "-" reads standard input.  Paths ending in
// .gz (including bgzf files) are decompressed transparently.
func Open(ctx context.Context, path string) (*Input, error) {
	if IsStdio(path) {
		return &Input{Reader: os.Stdin, path: Stdio}, nil
	}
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, errors.E(err, "open", path)
	}
	in := &Input{Reader: f.Reader(ctx), path: path, f: f}
	if fileio.DetermineType(path) == fileio.Gzip {
		if in.gz, err = gzip.NewReader(in.Reader); err != nil {
			_ = f.Close(ctx)
			return nil, errors.E(err, "gzip", path)
		}
		in.Reader = in.gz
	}
	return in, nil
}

// Path returns the path the input was opened with ("-" for stdin).
func (in *Input) Path() string {
	return in.path
}

// Close releases the input.  Closing stdin is a no-op.
func (in *Input) Close(ctx context.Context) (err error) {
	if in.gz != nil {
		if e := in.gz.Close(); e != nil {
			err = errors.E(e, "close", in.path)
		}
	}
	if in.f != nil {
		if e := in.f.Close(ctx); e != nil && err == nil {
			err = errors.E(e, "close", in.path)
		}
	}
	return
}

// Output is an opened text sink.
type Output struct {
	io.Writer
	path string
	f    file.File
	bgzf *bgzf.Writer
}

// Create opens path for writing.  "-" writes standard output.  Paths ending
// in .gz are bgzf-compressed with the given number of compression
// goroutines (0 picks a default).
func Create(ctx context.Context, path string, parallelism int) (*Output, error) {
	if IsStdio(path) {
		return &Output{Writer: os.Stdout, path: Stdio}, nil
	}
	f, err := file.Create(ctx, path)
	if err != nil {
		return nil, errors.E(err, "create", path)
	}
	out := &Output{Writer: f.Writer(ctx), path: path, f: f}
	if fileio.DetermineType(path) == fileio.Gzip {
		if parallelism <= 0 {
			parallelism = 1
		}
		out.bgzf = bgzf.NewWriter(out.Writer, parallelism)
		out.Writer = out.bgzf
	}
	return out, nil
}

// Path returns the path the output was created with ("-" for stdout).
func (out *Output) Path() string {
	return out.path
}

// Close flushes compression state and closes the file.  Closing stdout is a
// no-op.
func (out *Output) Close(ctx context.Context) (err error) {
	if out.bgzf != nil {
		if e := out.bgzf.Close(); e != nil {
			err = errors.E(e, "close", out.path)
		}
	}
	if out.f != nil {
		if e := out.f.Close(ctx); e != nil && err == nil {
			err = errors.E(e, "close", out.path)
		}
	}
	return
}
