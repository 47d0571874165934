// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

// Compare compares two views byte by byte.
//
// When the lengths differ, the result is decided by the first extra byte of
// the longer view alone, as if it were compared against a terminating NUL:
// -b[len(a)] if a is shorter, a[len(b)] if a is longer. This holds even when
// an earlier byte differs, and bytes are compared as signed chars. Equality
// (result 0) is exact for views that contain no NUL bytes.
func Compare(a, b []byte) int {
	result := 0
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			result = int(a[i]) - int(b[i])
			break
		}
	}
	switch {
	case len(a) < len(b):
		result = -int(int8(b[len(a)]))
	case len(a) > len(b):
		result = int(int8(a[len(b)]))
	}
	return result
}

// CompareCString compares a NUL-terminated string a with the view b.
// a ends at its first NUL byte or at its end.
func CompareCString(a string, b []byte) int {
	i := 0
	for i < len(a) && a[i] != 0 && i < len(b) && a[i] == b[i] {
		i++
	}
	aEnd := i >= len(a) || a[i] == 0
	switch {
	case aEnd && i == len(b):
		return 0
	case i == len(b):
		return int(int8(a[i]))
	case aEnd:
		return -int(int8(b[i]))
	}
	return int(int8(a[i])) - int(int8(b[i]))
}
