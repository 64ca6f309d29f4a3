// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*Package window computes centered rolling statistics over the scores of one
  contig.

  A contig of n scores is first padded with (w-1)/2 values at each end, where
  w is the (odd) window size, so that every real position has a full window
  centered on it.  Two padding policies are supported: circular (the contig
  wraps around, as for bacterial chromosomes and plasmids) and edge (the first
  and last scores are replicated).

  The rolling mean is computed with an incremental recurrence; the rolling
  median sorts each window independently.
*/
package window
