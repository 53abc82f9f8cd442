package ai

import (
	"context"
	"testing"
)

func TestModerateShortCircuitsEmptyInput(t *testing.T) {
	// No genai client needed: empty input never reaches the API.
	c := &Client{}

	for _, text := range []string{"", "   ", "\n\t "} {
		res, err := c.Moderate(context.Background(), text)
		if err != nil {
			t.Fatalf("Moderate(%q) returned error: %v", text, err)
		}
		if !res.IsAppropriate {
			t.Errorf("Moderate(%q): expected appropriate verdict", text)
		}
		if res.ModeratedText != "" {
			t.Errorf("Moderate(%q): expected empty moderated text, got %q", text, res.ModeratedText)
		}
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"isAppropriate":true}`, `{"isAppropriate":true}`},
		{"```json\n{\"isAppropriate\":true}\n```", `{"isAppropriate":true}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestResponseTextNilSafety(t *testing.T) {
	if got := responseText(nil); got != "" {
		t.Errorf("responseText(nil) = %q, want empty", got)
	}
}
