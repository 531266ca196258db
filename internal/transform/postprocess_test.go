package transform

import "testing"

func TestNormalizeSourceLinks(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"[https://ex.com/a](https://ex.com/a)", "https://ex.com/a"},
		{"[https://ex.com/a]", "https://ex.com/a"},
		{"plain https://ex.com/a stays", "plain https://ex.com/a stays"},
		{"[not a url](https://ex.com/a)", "[not a url](https://ex.com/a)"},
	}
	for _, c := range cases {
		if got := NormalizeSourceLinks(c.in); got != c.want {
			t.Errorf("NormalizeSourceLinks(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeSourceLinks_Idempotent(t *testing.T) {
	once := NormalizeSourceLinks("see [https://ex.com/a](https://ex.com/a) now")
	twice := NormalizeSourceLinks(once)
	if once != twice {
		t.Fatalf("normalization is not idempotent: %q vs %q", once, twice)
	}
}

func TestHasAttribution(t *testing.T) {
	url := "https://ex.com/a"
	cases := []struct {
		text string
		want bool
	}{
		{"post ends with " + url, true},
		{"post ends with Source: somewhere", true},
		{"post ends with SOURCE: somewhere", true},
		{"post ends with 📎 Source reference", true},
		{"no reference at all", false},
	}
	for _, c := range cases {
		if got := HasAttribution(c.text, url); got != c.want {
			t.Errorf("HasAttribution(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}
