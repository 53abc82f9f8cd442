package normalize_test

import (
	"testing"

	"github.com/feedbacksapp/feedbacks/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	cases := []struct{ in, want string }{
		{"User@Example.COM", "user@example.com"},
		{"  a@b.co  ", "a@b.co"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := normalize.Email(tc.in); got != tc.want {
			t.Errorf("Email(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestName(t *testing.T) {
	cases := []struct{ in, want string }{
		{"  María   López ", "María López"},
		{"Solo", "Solo"},
		{"\tTabs\tand\nnewlines\n", "Tabs and newlines"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := normalize.Name(tc.in); got != tc.want {
			t.Errorf("Name(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
