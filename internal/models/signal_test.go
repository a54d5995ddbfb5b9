package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLevels_ParsesOrderedTargets(t *testing.T) {
	sig := Signal{
		Entry:       decimal.RequireFromString("100"),
		StopLoss:    decimal.RequireFromString("95"),
		TakeProfits: "110, 120 ,130",
	}
	levels, err := sig.Levels()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if levels.FirstTarget.Cmp(decimal.NewFromInt(110)) != 0 {
		t.Fatalf("first=%s want=110", levels.FirstTarget.String())
	}
	if len(levels.Targets) != 3 {
		t.Fatalf("targets=%d want=3", len(levels.Targets))
	}
}

func TestLevels_Malformed(t *testing.T) {
	cases := []struct {
		name string
		sig  Signal
	}{
		{"empty take profits", Signal{Entry: decimal.NewFromInt(100), StopLoss: decimal.NewFromInt(95), TakeProfits: ""}},
		{"unparsable target", Signal{Entry: decimal.NewFromInt(100), StopLoss: decimal.NewFromInt(95), TakeProfits: "abc"}},
		{"negative target", Signal{Entry: decimal.NewFromInt(100), StopLoss: decimal.NewFromInt(95), TakeProfits: "-110"}},
		{"zero entry", Signal{Entry: decimal.Zero, StopLoss: decimal.NewFromInt(95), TakeProfits: "110"}},
		{"zero stop loss", Signal{Entry: decimal.NewFromInt(100), StopLoss: decimal.Zero, TakeProfits: "110"}},
	}
	for _, tc := range cases {
		if _, err := tc.sig.Levels(); !errors.Is(err, ErrMalformedSignal) {
			t.Fatalf("%s: err=%v want=ErrMalformedSignal", tc.name, err)
		}
	}
}

func TestParseLeverage(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"10", 10},
		{"10x", 10},
		{"10X", 10},
		{" 25x ", 25},
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
	}
	for _, tc := range cases {
		if got := ParseLeverage(tc.in); got != tc.want {
			t.Fatalf("ParseLeverage(%q)=%d want=%d", tc.in, got, tc.want)
		}
	}
}
