// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

// suggestKeyword returns the keyword closest to word, if it is at most one
// edit away.
func suggestKeyword(word []byte) (string, bool) {
	const maxDistance = 1
	best, bestDistance := "", maxDistance+1
	for _, kw := range keywords {
		d := editDistance(string(word), kw.word, maxDistance)
		if d < bestDistance {
			best, bestDistance = kw.word, d
		}
	}
	return best, bestDistance <= maxDistance
}

// editDistance returns the Levenshtein distance of s1 and s2.
// If max > 0 and the distance exceeds max, it returns max+1 early.
func editDistance(s1, s2 string, max int) int {
	// Only one row plus one element of the usual m x n table are kept.
	// row[x-1] is the left entry, row[x] from the last iteration is the
	// top entry, and previous is the top-left entry.
	m := len(s1)
	n := len(s2)

	row := make([]int, n+1)
	for i := 1; i <= n; i++ {
		row[i] = i
	}

	for y := 1; y <= m; y++ {
		row[0] = y
		bestThisRow := row[0]
		previous := y - 1
		for x := 1; x <= n; x++ {
			oldRow := row[x]
			p := previous
			if s1[y-1] != s2[x-1] {
				p++
			}
			row[x] = min(p, min(row[x-1], row[x])+1)
			previous = oldRow
			bestThisRow = min(bestThisRow, row[x])
		}
		if max > 0 && bestThisRow > max {
			return max + 1
		}
	}
	return row[n]
}
