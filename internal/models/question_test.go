package models

import "testing"

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in   string
		want QuestionCategory
		ok   bool
	}{
		{"part1", Part1, true},
		{"part2", Part2, true},
		{"part3", Part3, true},
		{"part4", "", false},
		{"", "", false},
		{"Part1", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseCategory(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParseCategory(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCategoryTitle(t *testing.T) {
	if got := Part2.Title(); got != "Part 2" {
		t.Errorf("Title = %q, want %q", got, "Part 2")
	}
}

func TestCategoryIsValid(t *testing.T) {
	for _, c := range AllCategories() {
		if !c.IsValid() {
			t.Errorf("%q reported invalid", c)
		}
	}
	if QuestionCategory("speaking").IsValid() {
		t.Error("unknown category reported valid")
	}
}
