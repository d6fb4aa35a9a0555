package localisation

import (
	"strings"
	"testing"
)

func TestLoadReaderParsesPreambleAndEntries(t *testing.T) {
	src := `l_english:
 PROV_1299:0 "Stockholm"
 PROV_1300:0 "Oslo"
`
	tbl := NewTable()
	if err := tbl.LoadReader(strings.NewReader(src)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := tbl.Get("english", "PROV_1299")
	if !ok || got != "Stockholm" {
		t.Fatalf("got %q,%v, want Stockholm,true", got, ok)
	}
}

func TestLoadReaderIgnoresContentBeforePreamble(t *testing.T) {
	src := `KEY:0 "orphan"
l_english:
 KEY:0 "real"
`
	tbl := NewTable()
	if err := tbl.LoadReader(strings.NewReader(src)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := tbl.Get("english", "KEY")
	if got != "real" {
		t.Fatalf("got %q, want real (pre-preamble content ignored)", got)
	}
}

func TestLanguagesListsLoadedLangs(t *testing.T) {
	tbl := NewTable()
	tbl.LoadReader(strings.NewReader("l_english:\n KEY:0 \"x\"\n"))
	tbl.LoadReader(strings.NewReader("l_french:\n KEY:0 \"y\"\n"))
	if len(tbl.Languages()) != 2 {
		t.Fatalf("got %v, want 2 languages", tbl.Languages())
	}
}
