package slug

import "testing"

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Senior Engineer", "senior-engineer"},
		{"  Staff  Engineer  ", "staff-engineer"},
		{"C++ / Go Developer!", "c-go-developer"},
		{"UPPER case", "upper-case"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"", ""},
		{"Data Analyst (Remote)", "data-analyst-remote"},
	}
	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
