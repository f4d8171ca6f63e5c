package contract

import (
	"testing"
)

// FuzzParseDate fuzzes ParseDate and checks that any accepted date formats back to itself.
func FuzzParseDate(f *testing.F) {
	seeds := []string{"2024-01-01", "2024-02-29", "2023-02-29", "", "1999-12-31", "2024-1-1", " 2030-06-15 "}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		d, err := ParseDate(s)
		if err != nil {
			return
		}
		again, err := ParseDate(FormatDate(d))
		if err != nil {
			t.Fatalf("formatted date %q does not parse: %v", FormatDate(d), err)
		}
		if !again.Equal(d) {
			t.Fatalf("round trip of %q changed %s to %s", s, d, again)
		}
	})
}

// FuzzTruncateText fuzzes TruncateText and checks the width limit.
func FuzzTruncateText(f *testing.F) {
	f.Add("Platform migration", 10)
	f.Add("", 0)
	f.Add("Échéancier", 4)

	f.Fuzz(func(t *testing.T, text string, maxWidth int) {
		out := TruncateText(text, maxWidth)
		if maxWidth > 3 && len([]rune(out)) > maxWidth {
			t.Fatalf("TruncateText(%q, %d) = %q is too wide", text, maxWidth, out)
		}
	})
}
