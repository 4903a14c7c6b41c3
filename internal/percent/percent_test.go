package percent

import (
	"net/url"
	"testing"
)

func TestEscape(t *testing.T) {
	cases := []struct {
		input  string
		expect string
	}{
		{"", ""},
		{"abcXYZ019", "abcXYZ019"},
		{"-._*", "-._*"},
		{"hello world", "hello+world"},
		{"a+b", "a%2Bb"},
		{"a/b", "a%2Fb"},
		{"a + b", "a+%2B+b"},
		{"~", "%7E"},
		{"caffè", "caff%C3%A8"},
		{":/?#[]@", "%3A%2F%3F%23%5B%5D%40"},
		{"!$&'()*+,;=", "%21%24%26%27%28%29*%2B%2C%3B%3D"},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			if got := Escape(tc.input); got != tc.expect {
				t.Fatalf("expected %q, got %q", tc.expect, got)
			}
		})
	}
}

func TestEscapeRoundTripsThroughQueryUnescape(t *testing.T) {
	// RFC 3986 section 2.2 reserved characters plus space and a few others
	inputs := []string{
		":/?#[]@!$&'()*+,;=",
		"a b+c/d",
		"  ++//  ",
		"100% sure",
		"key=value&other=thing",
		"ünïcödé ✓",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			escaped := Escape(input)
			decoded, err := url.QueryUnescape(escaped)
			if err != nil {
				t.Fatal(err)
			}
			if decoded != input {
				t.Fatalf("expected %q, got %q (escaped: %q)", input, decoded, escaped)
			}
		})
	}
}
