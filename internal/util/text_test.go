package util

import (
	"reflect"
	"testing"
)

func TestNormalizeSpaces(t *testing.T) {
	got := NormalizeSpaces("  Torque \t Limit  (upper) ")
	if got != "Torque Limit (upper)" {
		t.Fatalf("got %q", got)
	}
	if NormalizeSpaces(" \t ") != "" {
		t.Fatalf("blank input should normalize to empty")
	}
}

func TestSplitLines(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "unix", input: "12\n0001h\nSpeed\n", want: []string{"12", "0001h", "Speed"}},
		{name: "crlf", input: "12\r\n0001h\r\n", want: []string{"12", "0001h"}},
		{name: "keeps blanks", input: "a\n\n  b  \n", want: []string{"a", "", "b"}},
		{name: "form feed", input: "a\fb", want: []string{"a", "b"}},
		{name: "invalid utf8 dropped", input: "Na\xffme\n", want: []string{"Name"}},
		{name: "empty", input: "", want: []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitLines(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
