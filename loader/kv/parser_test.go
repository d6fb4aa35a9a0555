package kv

import "testing"

func TestParseSimplePairs(t *testing.T) {
	src := `tag = "SWE"
capital = 1
`
	pairs, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tag, ok := Get(pairs, "tag")
	if !ok || tag.Scalar != "SWE" {
		t.Fatalf("got %+v, want tag=SWE", tag)
	}
}

func TestParseNestedBlock(t *testing.T) {
	src := `country = {
		tag = "SWE"
		core = TAG1
		core = TAG2
	}`
	pairs, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	country, ok := Get(pairs, "country")
	if !ok || country.Block == nil {
		t.Fatalf("expected a nested block, got %+v", country)
	}
	cores := GetAll(country.Block, "core")
	if len(cores) != 2 || cores[0].Scalar != "TAG1" || cores[1].Scalar != "TAG2" {
		t.Fatalf("got %+v, want [TAG1 TAG2]", cores)
	}
}

func TestParseDateKeyedSubBlock(t *testing.T) {
	src := `owner = AAA
1444.11.11 = {
	owner = BBB
}`
	pairs, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dated, ok := Get(pairs, "1444.11.11")
	if !ok || !dated.IsDate {
		t.Fatalf("expected a date-keyed entry, got %+v", dated)
	}
	if dated.Date != (Date{Year: 1444, Month: 11, Day: 11}) {
		t.Fatalf("got %+v, want 1444-11-11", dated.Date)
	}
}

func TestParseYesNoBoolean(t *testing.T) {
	src := `allows_agriculture = yes
is_coastal = no`
	pairs, _ := Parse(src)
	v, _ := Get(pairs, "allows_agriculture")
	if !Bool(v.Scalar) {
		t.Fatal("expected allows_agriculture to be true")
	}
	v2, _ := Get(pairs, "is_coastal")
	if Bool(v2.Scalar) {
		t.Fatal("expected is_coastal to be false")
	}
}

func TestParseSkipsComments(t *testing.T) {
	src := `# this is a comment
tag = "SWE" # trailing comment
`
	pairs, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("got %d pairs, want 1", len(pairs))
	}
}

func TestDateLessOrdersChronologically(t *testing.T) {
	a := Date{Year: 1444, Month: 11, Day: 11}
	b := Date{Year: 1445, Month: 1, Day: 1}
	if !a.Less(b) || b.Less(a) {
		t.Fatal("expected 1444.11.11 < 1445.1.1")
	}
}

func TestParseBareScalarList(t *testing.T) {
	src := `provinces = { 1402 1403 1404 }`
	pairs, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := Get(pairs, "provinces")
	if !ok || len(v.List) != 3 {
		t.Fatalf("got %+v, want a 3-element List", v)
	}
	if v.List[0] != "1402" || v.List[2] != "1404" {
		t.Fatalf("got %v, want [1402 1403 1404]", v.List)
	}
}

func TestParseEmptyBlockIsNeitherListNorBlock(t *testing.T) {
	src := `core = {}`
	pairs, err := Parse(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := Get(pairs, "core")
	if !ok || v.Block != nil || v.List != nil {
		t.Fatalf("got %+v, want an empty Value", v)
	}
}

func TestParseRejectsUnterminatedBlock(t *testing.T) {
	_, err := Parse(`country = { tag = "SWE"`)
	if err == nil {
		t.Fatal("expected an error for a missing closing brace")
	}
}
