package models

import "testing"

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "shop.example.com", want: "shop.example.com"},
		{in: "https://shop.example.com/", want: "shop.example.com"},
		{in: "http://Shop.Example.COM", want: "shop.example.com"},
		{in: "  shop.example.com  ", want: "shop.example.com"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizeDomain(tt.in); got != tt.want {
			t.Fatalf("NormalizeDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
