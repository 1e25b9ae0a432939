package access

import "testing"

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in  string
		out Level
	}{
		{"", -1},
		{"foo", -1},
		{Admin.String(), Admin},
		{Editor.String(), Editor},
		{Viewer.String(), Viewer},
		{NoAccess.String(), NoAccess},
	}

	for _, c := range cases {
		out := ParseLevel(c.in)
		if out != c.out {
			t.Errorf("ParseLevel(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}

func TestAtLeast(t *testing.T) {
	cases := []struct {
		held, required Level
		want           bool
	}{
		{NoAccess, Viewer, false},
		{Viewer, Viewer, true},
		{Viewer, Editor, false},
		{Editor, Viewer, true},
		{Editor, Editor, true},
		{Editor, Admin, false},
		{Admin, Viewer, true},
		{Admin, Admin, true},
	}

	for _, c := range cases {
		if got := c.held.AtLeast(c.required); got != c.want {
			t.Errorf("%s.AtLeast(%s) => %v, want %v", c.held, c.required, got, c.want)
		}
	}
}
