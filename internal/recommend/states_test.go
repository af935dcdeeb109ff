package recommend

import "testing"

func TestStateMatches(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "abbrev vs full", a: "WA", b: "Washington", want: true},
		{name: "full vs abbrev", a: "Washington", b: "wa", want: true},
		{name: "different states", a: "WA", b: "Oregon", want: false},
		{name: "identical full names", a: "florida", b: "Florida", want: true},
		{name: "trailing state qualifier", a: "Washington State", b: "WA", want: true},
		{name: "periods stripped", a: "W.A.", b: "washington", want: true},
		{name: "both empty", a: "", b: "", want: false},
		{name: "one empty", a: "WA", b: "", want: false},
		{name: "unknown abbrev", a: "ZZ", b: "ZZ", want: true},
		{name: "whitespace", a: "  fl ", b: "Florida", want: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := StateMatches(tt.a, tt.b); got != tt.want {
				t.Fatalf("StateMatches(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStateAbbreviation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "full name", in: "Washington", want: "WA"},
		{name: "abbrev passthrough", in: "fl", want: "FL"},
		{name: "trailing qualifier", in: "Washington State", want: "WA"},
		{name: "unknown", in: "Atlantis", want: ""},
		{name: "unknown abbrev", in: "ZZ", want: ""},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := StateAbbreviation(tt.in); got != tt.want {
				t.Fatalf("StateAbbreviation(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
