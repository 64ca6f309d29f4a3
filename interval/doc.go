// Copyright 2018 GRAIL, Inc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

/*Package interval reads BED-style interval streams and merges touching
  intervals into contiguous regions.

  Intervals are zero-based and half-open, [start, end).  Two intervals on the
  same chromosome are merged when the second starts exactly where the first
  ends; overlapping or out-of-order intervals are not merged, and nothing is
  sorted.  The merge holds at most one open region, so streams of any length
  can be processed.
*/
package interval
