package dynamo

import "testing"

func TestOrLocal(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "local"}, // DynamoDB Local needs something, anything
		{"AKIAEXAMPLE", "AKIAEXAMPLE"},
	}
	for _, tc := range cases {
		if got := orLocal(tc.in); got != tc.want {
			t.Errorf("orLocal(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
