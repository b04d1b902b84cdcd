package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompileAccentInsensitive(t *testing.T) {
	p := Compile("cafe")
	tests := []struct {
		text string
		want []Match
	}{
		{"cafe", []Match{{0, 4}}},
		{"café", []Match{{0, 5}}},
		{"CAFÉ", []Match{{0, 5}}},
		{"Cafe\u0301 decomposed", []Match{{0, 6}}},
		{"cafetería", []Match{{0, 4}}},
		{"un café, otro cafe", []Match{{3, 5}, {15, 4}}},
		{"coffee", nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, p.FindAll(tt.text)); diff != "" {
			t.Errorf("FindAll(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestCompileQueryWithAccents(t *testing.T) {
	p := Compile("canción")
	for _, text := range []string{"cancion", "CANCIÓN", "Cançión"} {
		if !p.MatchString(text) {
			t.Errorf("Compile(canción) does not match %q", text)
		}
	}
}

func TestCompileEscapesMetacharacters(t *testing.T) {
	p := Compile("a.b (c)?")
	if p.MatchString("axb (c)") {
		t.Error("dot matched any character")
	}
	if !p.MatchString("A.B (C)?") {
		t.Error("literal punctuation not matched")
	}
	if got := Compile("[b]").FindAll("x [B] y"); len(got) != 1 || got[0].Start != 2 {
		t.Errorf("bracket query matches = %v", got)
	}
}

func TestCompileLettersOutsideGroups(t *testing.T) {
	if !Compile("zelda").MatchString("ZELDA") {
		t.Error("case-insensitive flag not applied to letters without accent groups")
	}
}

func TestCompileEmpty(t *testing.T) {
	p := Compile("")
	if !p.Empty() {
		t.Fatal("empty query should give an empty pattern")
	}
	if got := p.FindAll("anything at all"); got != nil {
		t.Errorf("empty pattern matched %v", got)
	}
	if p.MatchString("x") {
		t.Error("empty pattern reported a match")
	}
	var nilPattern *Pattern
	if !nilPattern.Empty() || nilPattern.FindAll("x") != nil {
		t.Error("nil pattern should behave like an empty one")
	}
}

func TestExpression(t *testing.T) {
	if got, want := Expression("N-1"), `[nñNÑ]\p{Mn}*-1`; got != want {
		t.Errorf("Expression = %q, want %q", got, want)
	}
}
