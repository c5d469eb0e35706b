package textutil

import (
	"bytes"
	"testing"
)

func TestToLatin1(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain ASCII", "plain ASCII"},
		{"café © 2024", "café © 2024"},
		{"“Quoted” — it’s", `"Quoted" - it's`},
		{"Wait…", "Wait..."},
		{"Dvořák", "Dvorák"},
		{"ﬁne", "fine"},
		{"snow ☃ man", "snow  man"},
		{"日本", ""},
	}
	for _, tc := range tests {
		if got := ToLatin1(tc.in); got != tc.want {
			t.Errorf("ToLatin1(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEncodeLatin1(t *testing.T) {
	got, err := EncodeLatin1("©é’")
	if err != nil {
		t.Fatalf("EncodeLatin1 returned error: %v", err)
	}
	if want := []byte{0xA9, 0xE9, '\''}; !bytes.Equal(got, want) {
		t.Fatalf("EncodeLatin1 = %x, want %x", got, want)
	}
	back, err := DecodeLatin1(got)
	if err != nil {
		t.Fatalf("DecodeLatin1 returned error: %v", err)
	}
	if back != "©é'" {
		t.Fatalf("DecodeLatin1 = %q", back)
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"no markup", "no markup"},
		{"Hot coal in the <i>fireplace</i>", "Hot coal in the fireplace"},
		{"Wind up &amp; send", "Wind up & send"},
		{"Line<br>break", "Line break"},
		{"  spaced\n\tout  ", "spaced out"},
		{"<b>Bold</b> <span class=\"x\">span</span>", "Bold span"},
	}
	for _, tc := range tests {
		if got := HTMLToText(tc.in); got != tc.want {
			t.Errorf("HTMLToText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanup(t *testing.T) {
	if got := Cleanup(" <i>Café</i> — best ", false); got != "Café - best" {
		t.Fatalf("Cleanup flattened = %q", got)
	}
	if got := Cleanup("<i>Café</i>", true); got != "<i>Café</i>" {
		t.Fatalf("Cleanup preserved = %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := map[string]string{
		"Morning Mini":       "Morning_Mini",
		"What? A/B: test":    "What_A-B-_test",
		"   ":                "puzzle",
		"..":                 "puzzle",
		"Daily <Puzzle> #12": "Daily_Puzzle_#12",
	}
	for in, want := range tests {
		if got := SanitizeFileName(in); got != want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
