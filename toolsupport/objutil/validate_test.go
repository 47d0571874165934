// Copyright 2025 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package objutil

import (
	"fmt"
	"testing"
)

func TestValidInt(t *testing.T) {
	for _, tc := range []struct {
		word string
		want bool
	}{
		{"0", true},
		{"1", true},
		{"42", true},
		{"-7", true},
		{"+7", true},
		{"1000", true},
		{"", false},
		{"-", false},
		{"+", false},
		{"00", false},
		{"01", false},
		{"-0", false},
		{"+0", false},
		{"-01", false},
		{"1.0", false},
		{"1e3", false},
		{"12a", false},
		{"--1", false},
	} {
		if got := ValidInt([]byte(tc.word)); got != tc.want {
			t.Errorf("ValidInt(%q)=%t; want %t", tc.word, got, tc.want)
		}
	}
}

func TestValidInt_LeadingZero(t *testing.T) {
	for i := 1; i < 1000; i += 7 {
		for _, sign := range []string{"", "-", "+"} {
			word := fmt.Sprintf("%s%d", sign, i)
			if !ValidInt([]byte(word)) {
				t.Errorf("ValidInt(%q)=false; want true", word)
			}
			word = fmt.Sprintf("%s0%d", sign, i)
			if ValidInt([]byte(word)) {
				t.Errorf("ValidInt(%q)=true; want false", word)
			}
		}
	}
}

func TestValidFloat(t *testing.T) {
	for _, tc := range []struct {
		word string
		want bool
	}{
		{"0", true},
		{"1", true},
		{"1.0", true},
		{"1.", true},
		{"-1.5", true},
		{"+1.5", true},
		{".5", true},
		{"-.5", true},
		{"+.5", true},
		{"00.5", true},
		{"1e5", true},
		{"1E5", true},
		{"1.5e-3", true},
		{"1.5E+3", true},
		{".5e10", true},
		{"", false},
		{".", false},
		{"-", false},
		{"-.", false},
		{"1.2.3", false},
		{".5.3", false},
		{"1e", false},
		{"1e+", false},
		{"1e5e5", false},
		{"1e5.0", false},
		{"1ee5", false},
		{"e5", false},
		{"1f", false},
		{"1,0", false},
	} {
		if got := ValidFloat([]byte(tc.word)); got != tc.want {
			t.Errorf("ValidFloat(%q)=%t; want %t", tc.word, got, tc.want)
		}
	}
}

func TestValidFloat_SecondMarker(t *testing.T) {
	for _, mantissa := range []string{"1", "12", "1.5", ".5", "-3.25"} {
		for _, exp := range []string{"", "e1", "E-2", "e+10"} {
			word := mantissa + exp
			if !ValidFloat([]byte(word)) {
				t.Errorf("ValidFloat(%q)=false; want true", word)
			}
			if exp == "" {
				continue
			}
			for _, extra := range []string{"e1", "E1"} {
				bad := word + extra
				if ValidFloat([]byte(bad)) {
					t.Errorf("ValidFloat(%q)=true; want false", bad)
				}
			}
			bad := mantissa + ".1" + exp
			if mantissa != "1" && mantissa != "12" && ValidFloat([]byte(bad)) {
				t.Errorf("ValidFloat(%q)=true; want false", bad)
			}
		}
	}
}

func TestValidPrimitiveElement(t *testing.T) {
	for _, tc := range []struct {
		word string
		want bool
	}{
		{"1", true},
		{"1/2", true},
		{"1//3", true},
		{"1/2/3", true},
		{"-1/-1/-1", true},
		{"0/1/1", true},
		{"", false},
		{"/", false},
		{"1/", false},
		{"/1", false},
		{"1//", false},
		{"1/2/", false},
		{"1/2/3/4", false},
		{"01/2/3", false},
		{"1.0/2/3", false},
		{"a/2/3", false},
		{"1///3", false},
	} {
		if got := ValidPrimitiveElement([]byte(tc.word)); got != tc.want {
			t.Errorf("ValidPrimitiveElement(%q)=%t; want %t", tc.word, got, tc.want)
		}
	}
}

func TestSplitElement(t *testing.T) {
	for _, tc := range []struct {
		word      string
		form      elementForm
		v, vt, vn string
	}{
		{word: "1", form: formV, v: "1"},
		{word: "1/2", form: formVT, v: "1", vt: "2"},
		{word: "1//3", form: formVN, v: "1", vn: "3"},
		{word: "1/2/3", form: formVTN, v: "1", vt: "2", vn: "3"},
	} {
		form, v, vt, vn := splitElement([]byte(tc.word))
		if form != tc.form || string(v) != tc.v || string(vt) != tc.vt || string(vn) != tc.vn {
			t.Errorf("splitElement(%q)=%d, %q, %q, %q; want %d, %q, %q, %q", tc.word, form, v, vt, vn, tc.form, tc.v, tc.vt, tc.vn)
		}
	}
}

func TestValidName(t *testing.T) {
	for _, tc := range []struct {
		word string
		want bool
	}{
		{"a", true},
		{"Cube", true},
		{"_hidden", true},
		{"cube.001", true},
		{"left-arm_2", true},
		{"", false},
		{"1cube", false},
		{".cube", false},
		{"-cube", false},
		{"cu/be", false},
		{"cube$", false},
	} {
		if got := ValidName([]byte(tc.word)); got != tc.want {
			t.Errorf("ValidName(%q)=%t; want %t", tc.word, got, tc.want)
		}
	}
}
