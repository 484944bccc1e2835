package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in        string
		allowZero bool
		out       int64
		ok        bool
	}{
		{"1", false, 100, true},
		{"1.0", false, 100, true},
		{"1.23", false, 123, true},
		{"1,23", false, 123, true},
		{"0.01", false, 1, true},
		{"1.005", false, 101, true}, // half-up rounding
		{" 2.50 ", false, 250, true},
		{"0", true, 0, true},
		{"0", false, 0, false},
		{"-1", false, 0, false},
		{"-1", true, 0, false},
		{"abc", false, 0, false},
		{"1.2.3", false, 0, false},
		{"", false, 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in, tc.allowZero)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyFormat(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{123456, "1234.56"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).Format(); got != tc.want {
			t.Fatalf("%d cents: expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyJSONAsCents(t *testing.T) {
	b, err := json.Marshal(Money{Cents: 1234})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "1234" {
		t.Fatalf("expected bare cents, got %s", b)
	}
	var m Money
	if err := json.Unmarshal([]byte("250"), &m); err != nil || m.Cents != 250 {
		t.Fatalf("unmarshal got %+v err=%v", m, err)
	}
}
