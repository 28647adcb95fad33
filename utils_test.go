package fret

import "testing"

func TestNumericIdent(t *testing.T) {
	ok := map[string]int{
		"0":   0,
		"1":   1,
		"9":   9,
		"10":  10,
		"123": 123,
	}
	bad := []string{
		"",    // empty
		"01",  // leading zero
		"00",  // leading zero
		"1a",  // non-digit
		"-1",  // sign
		"1.0", // dot
	}

	for s, want := range ok {
		n, valid := numericIdent(s)
		if !valid || n != want {
			t.Fatalf("numericIdent(%q) = %d, %v; want %d, true", s, n, valid, want)
		}
	}

	for _, s := range bad {
		if _, valid := numericIdent(s); valid {
			t.Fatalf("numericIdent(%q) valid; want false", s)
		}
	}
}

func TestTrimV(t *testing.T) {
	cases := map[string]string{
		"v1.2.3": "1.2.3",
		"V1.2.3": "1.2.3",
		"1.2.3":  "1.2.3",
		"v":      "",
		"":       "",
	}

	for in, want := range cases {
		if got := trimV(in); got != want {
			t.Fatalf("trimV(%q) = %q; want %q", in, got, want)
		}
	}
}
