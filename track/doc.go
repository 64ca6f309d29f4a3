// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*Package track holds interval-score tracks (bedGraph data) in memory and
  implements the track-level transforms: range filtering, per-contig rolling
  statistics, robust z-scores, and counts-per-million.

  Rolling statistics are computed per contig, so windows never straddle two
  contigs.  Robust z-scores and CPM are computed over the whole track, across
  contigs.

  Reading and writing bedGraph text is handled by encoding/bedgraph.
*/
package track
