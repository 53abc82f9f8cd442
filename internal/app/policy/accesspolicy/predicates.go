// internal/app/policy/accesspolicy/predicates.go
package accesspolicy

// predicate is a pure condition over one request. Rules are built by
// composing these; none of them performs I/O.
type predicate func(req Request) bool

// allOf holds when every predicate holds.
func allOf(ps ...predicate) predicate {
	return func(req Request) bool {
		for _, p := range ps {
			if !p(req) {
				return false
			}
		}
		return true
	}
}

// anyOf holds when at least one predicate holds.
func anyOf(ps ...predicate) predicate {
	return func(req Request) bool {
		for _, p := range ps {
			if p(req) {
				return true
			}
		}
		return false
	}
}

// always grants unconditionally; used for the public recommendation reads.
func always(Request) bool { return true }

// signedIn requires any authenticated principal, anonymous included.
func signedIn(req Request) bool {
	return req.Principal.SignedIn && req.Principal.ID != ""
}

// notAnonymous excludes guest sessions.
func notAnonymous(req Request) bool {
	return !req.Principal.Anonymous
}

// ownsDocID requires the addressed document key to be the principal's own
// identity (the users collection keys documents by owner identity).
func ownsDocID(req Request) bool {
	return req.DocID != "" && req.DocID == req.Principal.ID
}

// ownsIncomingUserID requires the body being written to attribute itself
// to the requester. A missing or non-string userId fails.
func ownsIncomingUserID(req Request) bool {
	uid, ok := docString(req.Incoming, "userId")
	return ok && uid == req.Principal.ID
}

// ownsExistingUserID requires the stored document to belong to the
// requester.
func ownsExistingUserID(req Request) bool {
	uid, ok := docString(req.Existing, "userId")
	return ok && uid == req.Principal.ID
}

// incomingUserIDUnchanged rejects updates that try to re-attribute a
// document. An update body without a userId field is fine.
func incomingUserIDUnchanged(req Request) bool {
	in, ok := req.Incoming["userId"]
	if !ok {
		return true
	}
	ins, ok := in.(string)
	if !ok {
		return false
	}
	cur, ok := docString(req.Existing, "userId")
	return ok && ins == cur
}

// schemaValid adapts an entity-catalog validator into a predicate. The
// validator's error detail is discarded here on purpose: schema failures
// and authorization failures share one outward denial signal.
func schemaValid(validate func(Document) error) predicate {
	return func(req Request) bool {
		return validate(req.Incoming) == nil
	}
}

// docString reads a string field from a document; ok is false when the
// document is nil, the field is absent, or the value is not a string.
func docString(doc Document, key string) (string, bool) {
	if doc == nil {
		return "", false
	}
	v, ok := doc[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
