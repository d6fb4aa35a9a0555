package definitioncsv

import (
	"strings"
	"testing"
)

func TestParseSkipsAutoDetectedHeader(t *testing.T) {
	src := "province;red;green;blue;x\n1;100;150;200;Stockholm\n"
	tbl, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 1 {
		t.Fatalf("got %d rows, want 1 (header should be skipped)", len(tbl.Rows))
	}
	if tbl.Rows[0].Name != "Stockholm" {
		t.Fatalf("got name %q, want Stockholm", tbl.Rows[0].Name)
	}
}

func TestParseWithoutHeader(t *testing.T) {
	src := "1;100;150;200;Stockholm\n2;1;2;3;Ocean;x\n"
	tbl, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(tbl.Rows))
	}
	if !tbl.Rows[1].IsWater {
		t.Fatal("expected the second row's trailing 'x' to mark it as water")
	}
}

func TestByIdAndByColor(t *testing.T) {
	src := "1;100;150;200;Stockholm\n"
	tbl, _ := Parse(strings.NewReader(src))
	row, ok := tbl.ById(1)
	if !ok || row.Name != "Stockholm" {
		t.Fatalf("got %+v, want Stockholm", row)
	}
	byColor, ok := tbl.ByColor(row.PackRGB())
	if !ok || byColor.DefinitionId != 1 {
		t.Fatalf("got %+v, want DefinitionId=1", byColor)
	}
}
