// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*
bio-track processes bedGraph interval-score tracks: range filtering, rolling
means and medians within each contig, robust z-scores, CPM normalization, and
merging of touching BED intervals.

Every subcommand reads one input path ("-" for stdin) and writes to -out
("-", the default, for stdout).  Paths ending in .gz are read with gzip and
written with bgzf.

Sample usage:
bio-track roll -window 101 -stat median -circular -out smooth.bedgraph.gz cov.bedgraph
bio-track merge peaks.bed
*/
package main

import (
	"fmt"

	"github.com/grailbio/base/cmdutil"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/bio-track/encoding/bedgraph"
	"github.com/grailbio/bio-track/interval"
	"github.com/grailbio/bio-track/track"
	"github.com/grailbio/bio-track/util"
	"github.com/grailbio/bio-track/window"
	"v.io/x/lib/cmdline"
)

// ioFlags are the input/output settings shared by the track subcommands.
type ioFlags struct {
	out         *string
	parallelism *int
}

func addIOFlags(cmd *cmdline.Command) ioFlags {
	return ioFlags{
		out:         cmd.Flags.String("out", util.Stdio, `Output path; "-" writes stdout. A .gz suffix selects bgzf compression`),
		parallelism: cmd.Flags.Int("parallelism", 0, "Number of bgzf compression goroutines for .gz outputs; 0 = default"),
	}
}

func (f ioFlags) writeOpts() bedgraph.WriteOpts {
	opts := bedgraph.DefaultWriteOpts
	opts.Parallelism = *f.parallelism
	return opts
}

func oneInput(name string, argv []string) (string, error) {
	switch len(argv) {
	case 0:
		return util.Stdio, nil
	case 1:
		return argv[0], nil
	}
	return "", fmt.Errorf("%s takes at most one input path, but got %v", name, argv)
}

func newCmdFilter() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "filter",
		Short:    "Keep the records lying within a region",
		ArgsName: "[path]",
	}
	iof := addIOFlags(cmd)
	region := cmd.Flags.String("region", "", `Region to keep, as <contig>:<1-based first pos>-<last pos>,
<contig>:<1-based pos>, or just <contig>. Only records lying entirely inside the region are kept.`)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		in, err := oneInput(cmd.Name, argv)
		if err != nil {
			return err
		}
		if *region == "" {
			return fmt.Errorf("filter: -region is required")
		}
		return filterTrack(vcontext.Background(), in, *iof.out, *region, iof.writeOpts())
	})
	return cmd
}

func newCmdRoll() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "roll",
		Short: "Compute a rolling mean or median within each contig",
		Long: `
Each output score is the statistic over the window centered on the record.
Windows never cross contigs; at contig ends the window is filled either by
wrapping around (-circular) or by repeating the first/last score.`,
		ArgsName: "[path]",
	}
	iof := addIOFlags(cmd)
	windowSize := cmd.Flags.Int("window", track.DefaultRollOpts.WindowSize, "Window size, in records. Must be odd")
	stat := cmd.Flags.String("stat", track.DefaultRollOpts.Stat.String(), "Rolling statistic: mean or median")
	circular := cmd.Flags.Bool("circular", track.DefaultRollOpts.Circular, "Treat contigs as circular when padding windows at contig ends")
	recompute := cmd.Flags.Int("recompute", track.DefaultRollOpts.RecomputeEvery, "Recompute the rolling-mean sum from scratch every N records; 0 = never")
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		in, err := oneInput(cmd.Name, argv)
		if err != nil {
			return err
		}
		opts := track.DefaultRollOpts
		opts.WindowSize = *windowSize
		opts.Circular = *circular
		opts.RecomputeEvery = *recompute
		if opts.Stat, err = window.ParseStat(*stat); err != nil {
			return err
		}
		return rollTrack(vcontext.Background(), in, *iof.out, opts, iof.writeOpts())
	})
	return cmd
}

func newCmdRobustZ() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "robust-z",
		Short:    "Replace scores by robust z-scores, 0.6745*(x-median)/MAD, over the whole track",
		ArgsName: "[path]",
	}
	iof := addIOFlags(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		in, err := oneInput(cmd.Name, argv)
		if err != nil {
			return err
		}
		return robustZTrack(vcontext.Background(), in, *iof.out, iof.writeOpts())
	})
	return cmd
}

func newCmdCPM() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "cpm",
		Short:    "Rescale scores to counts-per-million over the whole track",
		ArgsName: "[path]",
	}
	iof := addIOFlags(cmd)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		in, err := oneInput(cmd.Name, argv)
		if err != nil {
			return err
		}
		return cpmTrack(vcontext.Background(), in, *iof.out, iof.writeOpts())
	})
	return cmd
}

func newCmdMerge() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:  "merge",
		Short: "Merge touching intervals of a BED stream into contiguous regions",
		Long: `
Reads seqname/start/end from the first three columns. An interval is merged
into the previous one only if it is on the same contig and starts exactly at
the previous end. Input is streamed; memory use does not grow with input size.`,
		ArgsName: "[path]",
	}
	out := cmd.Flags.String("out", util.Stdio, `Output path; "-" writes stdout`)
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		in, err := oneInput(cmd.Name, argv)
		if err != nil {
			return err
		}
		return interval.MergePath(vcontext.Background(), in, *out)
	})
	return cmd
}

func newCmdInfo() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "info",
		Short:    "Print contig lengths and the track resolution",
		ArgsName: "[path]",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		in, err := oneInput(cmd.Name, argv)
		if err != nil {
			return err
		}
		return info(vcontext.Background(), in, env.Stdout)
	})
	return cmd
}

func newCmdChecksum() *cmdline.Command {
	cmd := &cmdline.Command{
		Name:     "checksum",
		Short:    "Print an order-sensitive digest of the track records",
		ArgsName: "[path]",
	}
	cmd.Runner = cmdutil.RunnerFunc(func(env *cmdline.Env, argv []string) error {
		in, err := oneInput(cmd.Name, argv)
		if err != nil {
			return err
		}
		return checksum(vcontext.Background(), in, env.Stdout)
	})
	return cmd
}

func newCmdRoot() *cmdline.Command {
	return &cmdline.Command{
		Name:     "bio-track",
		Short:    "Tools for working with bedGraph interval-score tracks",
		LookPath: false,
		Children: []*cmdline.Command{
			newCmdFilter(),
			newCmdRoll(),
			newCmdRobustZ(),
			newCmdCPM(),
			newCmdMerge(),
			newCmdInfo(),
			newCmdChecksum(),
		},
	}
}

func main() {
	cmdline.HideGlobalFlagsExcept()
	cmdline.Main(newCmdRoot())
}
