package accesspolicy

import "testing"

func TestCombinators(t *testing.T) {
	yes := predicate(func(Request) bool { return true })
	no := predicate(func(Request) bool { return false })
	req := Request{}

	if !allOf()(req) {
		t.Error("allOf() should hold vacuously")
	}
	if !allOf(yes, yes)(req) {
		t.Error("allOf(yes, yes) should hold")
	}
	if allOf(yes, no)(req) {
		t.Error("allOf(yes, no) should not hold")
	}
	if anyOf()(req) {
		t.Error("anyOf() should not hold vacuously")
	}
	if !anyOf(no, yes)(req) {
		t.Error("anyOf(no, yes) should hold")
	}
	if anyOf(no, no)(req) {
		t.Error("anyOf(no, no) should not hold")
	}
}

func TestSignedInRequiresIdentity(t *testing.T) {
	// A claim of being signed in without an identity is malformed and must
	// fail closed.
	req := Request{Principal: Principal{SignedIn: true}}
	if signedIn(req) {
		t.Error("signedIn should fail for an empty identity")
	}
}

func TestDocString(t *testing.T) {
	doc := Document{"userId": "u1", "count": 3, "null": nil}

	if v, ok := docString(doc, "userId"); !ok || v != "u1" {
		t.Errorf("userId: got (%q, %v)", v, ok)
	}
	if _, ok := docString(doc, "count"); ok {
		t.Error("non-string value should not be ok")
	}
	if _, ok := docString(doc, "null"); ok {
		t.Error("null value should not be ok")
	}
	if _, ok := docString(doc, "missing"); ok {
		t.Error("missing key should not be ok")
	}
	if _, ok := docString(nil, "userId"); ok {
		t.Error("nil document should not be ok")
	}
}

func TestIncomingUserIDUnchanged(t *testing.T) {
	existing := Document{"userId": "u1"}

	cases := []struct {
		name     string
		incoming Document
		want     bool
	}{
		{"absent userId passes", Document{"text": "x"}, true},
		{"same userId passes", Document{"userId": "u1"}, true},
		{"different userId fails", Document{"userId": "u2"}, false},
		{"non-string userId fails", Document{"userId": 7}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := incomingUserIDUnchanged(Request{Existing: existing, Incoming: tc.incoming})
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
