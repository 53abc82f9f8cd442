// Package accesspolicy is the access-control core of FeedBacks.
//
// Every read or write against the four document collections is decided
// here, by a pure function of the requesting principal, the operation, the
// collection, and the document bodies involved. The engine has no I/O and
// no ambient state; stores call Authorize before any database operation.
//
// Authorization model:
//   - Default-deny: an operation is allowed only when a rule for its
//     (collection, operation) pair exists and its predicate holds. Unknown
//     collections fall through to denial.
//   - Rules are partitioned per collection with no overlapping grants, so
//     there is no allow/deny conflict resolution.
//   - Schema validation (the entity catalog) runs inside the create/update
//     predicates. A schema failure and an ownership failure are
//     indistinguishable from the outside: both surface as
//     ErrPermissionDenied.
package accesspolicy

import "errors"

// ErrPermissionDenied is the single outward signal for every denied
// operation. The engine deliberately does not distinguish why a rule
// failed (bad schema, wrong owner, wrong role); callers infer root cause
// from context.
var ErrPermissionDenied = errors.New("permission denied")

// Operation is one of the five data-access operations the engine decides.
type Operation string

const (
	OpCreate Operation = "create"
	OpRead   Operation = "read" // get a single document
	OpList   Operation = "list" // query/enumerate a collection
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Collection identifies one of the persisted collections. The values are
// the literal collection names used in MongoDB.
type Collection string

const (
	Users           Collection = "users"
	Recommendations Collection = "recommendations"
	ChatMessages    Collection = "chatMessages"
	FeedbackLogs    Collection = "summarizedFeedbackLogs"
)

// Principal is the identity issuing a request.
//
// Three states matter to the rules:
//   - unauthenticated:       SignedIn == false
//   - anonymous guest:       SignedIn == true, Anonymous == true
//   - registered (non-anon): SignedIn == true, Anonymous == false
type Principal struct {
	ID        string
	SignedIn  bool
	Anonymous bool
}

// Unauthenticated returns the principal for a request with no
// authentication claims at all.
func Unauthenticated() Principal {
	return Principal{}
}

// Registered returns a signed-in, non-anonymous principal with the given
// identity.
func Registered(id string) Principal {
	return Principal{ID: id, SignedIn: true}
}

// Guest returns a signed-in principal flagged anonymous.
func Guest(id string) Principal {
	return Principal{ID: id, SignedIn: true, Anonymous: true}
}

// Document is a generic document body, keyed by persisted field names.
// Incoming bodies carry what the client is writing; existing bodies carry
// what is already stored. A nil Document means "not applicable" (for
// example, no incoming body on a read).
type Document map[string]any

// Request is the full input tuple for one policy decision.
type Request struct {
	Principal  Principal
	Operation  Operation
	Collection Collection

	// DocID is the document key being addressed, when the operation
	// targets a single document. For the users collection the key is the
	// owner's identity and several rules compare against it.
	DocID string

	// Existing is the stored document body (updates and, where a rule
	// needs it, reads). Incoming is the body being written (creates and
	// updates). Either may be nil.
	Existing Document
	Incoming Document
}

// Decision is the outcome of evaluating one request. Rule carries the name
// of the granting rule for debug logging; it is never exposed to clients.
type Decision struct {
	Allowed bool
	Rule    string
}

// Config tunes the few behaviors the reference rules left open.
type Config struct {
	// TrimFeedbackWhitespace controls whether feedback text is trimmed
	// before the non-empty check, i.e. whether whitespace-only feedback is
	// rejected. The reference behavior only rejects the empty string; the
	// stricter trimming interpretation is the default here.
	TrimFeedbackWhitespace bool
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{TrimFeedbackWhitespace: true}
}

// Engine evaluates requests against the rule table. It is immutable after
// construction and safe for concurrent use.
type Engine struct {
	cfg   Config
	rules map[Collection]map[Operation]rule
}

type rule struct {
	name string
	pred predicate
}

// New builds an Engine with the given configuration.
func New(cfg Config) *Engine {
	e := &Engine{cfg: cfg}
	e.rules = map[Collection]map[Operation]rule{
		Users: {
			OpCreate: {"users.create.owner", allOf(signedIn, notAnonymous, ownsDocID, schemaValid(validateUserDoc))},
			OpRead:   {"users.read.owner", allOf(signedIn, ownsDocID)},
			OpUpdate: {"users.update.owner", allOf(signedIn, ownsDocID, schemaValid(validateUserPatch))},
			// no list, no delete
		},
		Recommendations: {
			OpCreate: {"recommendations.create.owner", allOf(signedIn, notAnonymous, ownsIncomingUserID, schemaValid(validateRecommendationDoc))},
			OpRead:   {"recommendations.read.public", always},
			OpList:   {"recommendations.list.public", always},
			OpUpdate: {"recommendations.update.owner", allOf(signedIn, ownsExistingUserID, incomingUserIDUnchanged, schemaValid(validateRecommendationPatch))},
			// no delete
		},
		ChatMessages: {
			OpCreate: {"chat.create.owner", allOf(signedIn, notAnonymous, ownsIncomingUserID)},
			OpRead:   {"chat.read.registered", allOf(signedIn, notAnonymous)},
			OpList:   {"chat.list.registered", allOf(signedIn, notAnonymous)},
			// fully immutable: no update, no delete
		},
		FeedbackLogs: {
			OpCreate: {"feedback.create.authenticated", allOf(signedIn, e.feedbackSchemaValid())},
			OpRead:   {"feedback.read.authenticated", signedIn},
			OpList:   {"feedback.list.authenticated", signedIn},
			// append-only: no update, no delete
		},
	}
	return e
}

// Evaluate decides one request. Unknown collections and unlisted
// operations deny.
func (e *Engine) Evaluate(req Request) Decision {
	ops, ok := e.rules[req.Collection]
	if !ok {
		return Decision{}
	}
	r, ok := ops[req.Operation]
	if !ok {
		return Decision{}
	}
	if !r.pred(req) {
		return Decision{}
	}
	return Decision{Allowed: true, Rule: r.name}
}

// Authorize is Evaluate collapsed to the engine's single error kind.
func (e *Engine) Authorize(req Request) error {
	if d := e.Evaluate(req); !d.Allowed {
		return ErrPermissionDenied
	}
	return nil
}

// feedbackSchemaValid binds the configured trimming policy into the
// feedback-log create predicate.
func (e *Engine) feedbackSchemaValid() predicate {
	trim := e.cfg.TrimFeedbackWhitespace
	return schemaValid(func(doc Document) error {
		return validateFeedbackDoc(doc, trim)
	})
}
