// internal/app/policy/accesspolicy/schema.go
//
// The entity catalog: per-collection document shape checks, evaluated at
// write time only. Who may perform the write is decided by the rule
// predicates; these functions only care about the document itself.
package accesspolicy

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/feedbacksapp/feedbacks/internal/domain/models"
)

// Basic syntactic email check. Deliverability is not this layer's problem;
// this mirrors the reference rules' format check.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var (
	errNoDocument    = errors.New("no document body")
	errBadEmail      = errors.New("email does not match email syntax")
	errBadSector     = errors.New("sector is not in the fixed sector set")
	errEmptyFeedback = errors.New("originalFeedbackText must be non-empty")
)

// validateUserDoc checks a full user document on create: email must be
// syntactically valid and professionalSector must be null, absent, or a
// member of the fixed sector set.
func validateUserDoc(doc Document) error {
	if doc == nil {
		return errNoDocument
	}
	email, ok := docString(doc, "email")
	if !ok || !emailRe.MatchString(email) {
		return errBadEmail
	}
	return checkOptionalSector(doc, "professionalSector")
}

// validateUserPatch checks a partial user update. Only fields present in
// the patch are validated; the merge semantics of the users collection
// allow sparse bodies.
func validateUserPatch(doc Document) error {
	if doc == nil {
		return errNoDocument
	}
	if v, ok := doc["email"]; ok {
		s, isStr := v.(string)
		if !isStr || !emailRe.MatchString(s) {
			return errBadEmail
		}
	}
	return checkOptionalSector(doc, "professionalSector")
}

// validateRecommendationDoc checks a full recommendation on create:
// sector is required, non-null, and a member of the fixed sector set.
// userSector, being a profile snapshot, follows the null-or-member rule.
func validateRecommendationDoc(doc Document) error {
	if doc == nil {
		return errNoDocument
	}
	sector, ok := docString(doc, "sector")
	if !ok || !models.IsValidSector(sector) {
		return errBadSector
	}
	return checkOptionalSector(doc, "userSector")
}

// validateRecommendationPatch checks a partial recommendation update.
// sector may be changed by the owner, but only to another valid member.
func validateRecommendationPatch(doc Document) error {
	if doc == nil {
		return errNoDocument
	}
	if v, ok := doc["sector"]; ok {
		s, isStr := v.(string)
		if !isStr || !models.IsValidSector(s) {
			return errBadSector
		}
	}
	return checkOptionalSector(doc, "userSector")
}

// validateFeedbackDoc checks a feedback log on create. trim selects the
// trimming policy for the non-empty check (see Config).
func validateFeedbackDoc(doc Document, trim bool) error {
	if doc == nil {
		return errNoDocument
	}
	text, ok := docString(doc, "originalFeedbackText")
	if !ok {
		return errEmptyFeedback
	}
	if trim {
		text = strings.TrimSpace(text)
	}
	if len(text) == 0 {
		return errEmptyFeedback
	}
	// userId is reference-or-null and intentionally not ownership-checked.
	if v, ok := doc["userId"]; ok && v != nil {
		if _, isStr := v.(string); !isStr {
			return fmt.Errorf("userId must be a string or null")
		}
	}
	return nil
}

// checkOptionalSector enforces the null-or-member rule shared by user
// profiles and recommendation snapshots. Absent and explicit-null both
// pass; any other value must be a string in the sector set.
func checkOptionalSector(doc Document, key string) error {
	v, ok := doc[key]
	if !ok || v == nil {
		return nil
	}
	s, isStr := v.(string)
	if !isStr || !models.IsValidSector(s) {
		return errBadSector
	}
	return nil
}
