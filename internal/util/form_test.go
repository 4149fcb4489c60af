package util

import (
	"reflect"
	"testing"
)

func TestParseIntDefault(t *testing.T) {
	tests := []struct {
		in   string
		def  int
		want int
	}{
		{"5", 1, 5},
		{" 12 ", 1, 12},
		{"", 3, 3},
		{"abc", 7, 7},
		{"-2", 0, -2},
	}
	for _, tt := range tests {
		if got := ParseIntDefault(tt.in, tt.def); got != tt.want {
			t.Errorf("ParseIntDefault(%q, %d) = %d, want %d", tt.in, tt.def, got, tt.want)
		}
	}
}

func TestParseCheckbox(t *testing.T) {
	for in, want := range map[string]bool{"on": true, "1": true, "TRUE": true, "": false, "off": false, "0": false} {
		if got := ParseCheckbox(in); got != want {
			t.Errorf("ParseCheckbox(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" khai giảng, , năm học mới ,2024 ")
	want := []string{"khai giảng", "năm học mới", "2024"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList() = %#v, want %#v", got, want)
	}
	if got := SplitList(""); got != nil {
		t.Errorf("SplitList(\"\") = %#v, want nil", got)
	}
}
