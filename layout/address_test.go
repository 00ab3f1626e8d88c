package layout

import (
	"errors"
	"testing"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		Input string
		Want  string
		Kind  Kind
	}{
		{Input: "A1", Want: "A1", Kind: KindCell},
		{Input: "ab100", Want: "AB100", Kind: KindCell},
		{Input: "$A$1", Want: "A1", Kind: KindCell},
		{Input: "A1:B2", Want: "A1:B2", Kind: KindRange},
		{Input: "B2:A1", Want: "A1:B2", Kind: KindRange},
		{Input: "A1:A1", Want: "A1", Kind: KindCell},
		{Input: "A:C", Want: "A:C", Kind: KindColumn},
		{Input: "3:1", Want: "1:3", Kind: KindRow},
		{Input: "Sheet1!A1:B2", Want: "Sheet1!A1:B2", Kind: KindRange},
		{Input: "'My sheet'!A1", Want: "'My sheet'!A1", Kind: KindCell},
		{Input: "'it''s'!B4", Want: "'it''s'!B4", Kind: KindCell},
		{Input: "'Plain'!B4", Want: "Plain!B4", Kind: KindCell},
		{Input: "[Book]Sheet1!A1", Want: "[Book]Sheet1!A1", Kind: KindCell},
		{Input: "[Book]'2024'!A1:A10", Want: "[Book]'2024'!A1:A10", Kind: KindRange},
	}
	for _, c := range tests {
		addr, err := ParseAddress(c.Input)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", c.Input, err)
			continue
		}
		if got := addr.String(); got != c.Want {
			t.Errorf("%s: address mismatched! want %s, got %s", c.Input, c.Want, got)
		}
		if got := addr.Range.Kind(); got != c.Kind {
			t.Errorf("%s: kind mismatched! want %s, got %s", c.Input, c.Kind, got)
		}
	}
}

func TestParseAddressInvalid(t *testing.T) {
	tests := []string{
		"",
		"A",
		"A0",
		"1",
		"XFE1",
		"A1048577",
		"A1:B2:C3",
		"A1:3",
		"!A1",
		"[Book]A1",
		"'Sheet1!A1",
		"SUM",
	}
	for _, str := range tests {
		_, err := ParseAddress(str)
		if !errors.Is(err, ErrAddress) {
			t.Errorf("%s: expected invalid address, got %v", str, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		"A1",
		"A1:B2",
		"Sheet1!A1:B2",
		"[Book]Sheet1!A1",
		"'Q1 2024'!C3:D40",
		"XFD1048576",
	}
	for _, str := range tests {
		addr, err := ParseAddress(str)
		if err != nil {
			t.Errorf("%s: unexpected error: %s", str, err)
			continue
		}
		if got := addr.String(); got != str {
			t.Errorf("round trip failed! want %s, got %s", str, got)
		}
	}
}
