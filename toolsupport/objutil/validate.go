// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

// ValidInt reports whether word is an integer literal: an optional sign
// followed by digits, with no leading zero unless the digits are exactly "0"
// and unsigned.
func ValidInt(word []byte) bool {
	if len(word) == 0 {
		return false
	}
	i := 0
	if word[0] == '+' || word[0] == '-' {
		i++
	}
	if i == len(word) {
		return false
	}
	if word[i] == '0' && len(word) != 1 {
		return false
	}
	for ; i < len(word); i++ {
		if !isDigit(word[i]) {
			return false
		}
	}
	return true
}

// ValidFloat reports whether word is a float literal.
//
// It accepts an optional sign, then either a digit or a '.' followed by a
// digit, then digits with at most one decimal point in total, then an
// optional exponent: 'e' or 'E', an optional sign and at least one digit.
func ValidFloat(word []byte) bool {
	i := 0
	if i < len(word) && (word[i] == '+' || word[i] == '-') {
		i++
	}
	points := 0
	switch {
	case i < len(word) && isDigit(word[i]):
		i++
	case i+1 < len(word) && word[i] == '.' && isDigit(word[i+1]):
		points++
		i += 2
	default:
		return false
	}

	// mantissa
	for ; i < len(word); i++ {
		ch := word[i]
		if ch == 'e' || ch == 'E' {
			break
		}
		switch {
		case isDigit(ch):
		case ch == '.':
			points++
			if points > 1 {
				return false
			}
		default:
			return false
		}
	}
	if i == len(word) {
		return true
	}

	// exponent
	i++
	if i < len(word) && (word[i] == '+' || word[i] == '-') {
		i++
	}
	if i == len(word) {
		return false
	}
	for ; i < len(word); i++ {
		if !isDigit(word[i]) {
			return false
		}
	}
	return true
}

// elementForm is the shape of a primitive element.
type elementForm int

const (
	formInvalid elementForm = iota
	formV                   // int
	formVT                  // int/int
	formVN                  // int//int
	formVTN                 // int/int/int
)

// splitElement locates the first and second '/' of word in a single left to
// right scan and returns the shape and the three slots of the element.
// Missing slots are nil.
func splitElement(word []byte) (form elementForm, v, vt, vn []byte) {
	first, second := -1, -1
	for i, ch := range word {
		if ch != '/' {
			continue
		}
		if first < 0 {
			first = i
			continue
		}
		second = i
		break
	}
	switch {
	case first < 0:
		return formV, word, nil, nil
	case second < 0:
		return formVT, word[:first], word[first+1:], nil
	case first+1 == second:
		return formVN, word[:first], nil, word[second+1:]
	default:
		return formVTN, word[:first], word[first+1 : second], word[second+1:]
	}
}

// ValidPrimitiveElement reports whether word is a face element of the form
// v, v/vt, v//vn or v/vt/vn, where each slot is an integer literal.
func ValidPrimitiveElement(word []byte) bool {
	form, v, vt, vn := splitElement(word)
	switch form {
	case formV:
		return ValidInt(v)
	case formVT:
		return ValidInt(v) && ValidInt(vt)
	case formVN:
		return ValidInt(v) && ValidInt(vn)
	case formVTN:
		return ValidInt(v) && ValidInt(vt) && ValidInt(vn)
	}
	return false
}

// ValidName reports whether word matches [a-zA-Z_][a-zA-Z0-9_.-]*.
func ValidName(word []byte) bool {
	if len(word) == 0 {
		return false
	}
	if !letterChar.contains(word[0]) && word[0] != '_' {
		return false
	}
	for _, ch := range word[1:] {
		if !nameChar.contains(ch) {
			return false
		}
	}
	return true
}
