package keywords_test

import (
	"strings"
	"testing"

	"cstree/internal/keywords"
)

func TestEscape_AllReservedWords(t *testing.T) {
	all := keywords.All()
	if len(all) == 0 {
		t.Fatalf("embedded keyword table is empty")
	}
	for _, kw := range all {
		got := keywords.Escape(kw)
		if got != "@"+kw {
			t.Fatalf("Escape(%q) = %q, want %q", kw, got, "@"+kw)
		}
		if strings.Count(got, "@") != 1 {
			t.Fatalf("Escape(%q) doubled the marker: %q", kw, got)
		}
	}
}

func TestEscape_PlainIdentifierUnchanged(t *testing.T) {
	for _, name := range []string{"point", "Value", "classRoom", "x1", "_tmp"} {
		if got := keywords.Escape(name); got != name {
			t.Fatalf("Escape(%q) = %q, want unchanged", name, got)
		}
	}
}

func TestIsReserved(t *testing.T) {
	if !keywords.IsReserved("class") || !keywords.IsReserved("foreach") {
		t.Fatalf("expected class and foreach to be reserved")
	}
	if keywords.IsReserved("yield") {
		// yield is contextual, not reserved; a variable named yield is legal.
		t.Fatalf("yield must not be in the reserved table")
	}
	if keywords.IsReserved("Point") {
		t.Fatalf("Point must not be reserved")
	}
}

func TestIsValidIdent(t *testing.T) {
	valid := []string{"x", "_", "_x1", "Très", "число"}
	for _, name := range valid {
		if !keywords.IsValidIdent(name) {
			t.Fatalf("expected %q to be a valid identifier", name)
		}
	}
	invalid := []string{"", "1x", "a-b", "a b", "@class"}
	for _, name := range invalid {
		if keywords.IsValidIdent(name) {
			t.Fatalf("expected %q to be invalid", name)
		}
	}
}
