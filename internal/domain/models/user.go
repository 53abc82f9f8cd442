// internal/domain/models/user.go
package models

// User is a community member's profile document.
//
// NOTE:
//   - ID is the opaque identity assigned by the auth subsystem, not a
//     client-chosen value. The users collection keys documents by it, and
//     the access policy requires doc.ID == principal identity on every
//     create and update.
//   - Anonymous guests never get a user document; only registered
//     principals own one.
type User struct {
	ID                 string  `bson:"_id" json:"id"`
	Name               string  `bson:"name" json:"name"`
	Email              string  `bson:"email" json:"email"`
	ProfessionalSector *string `bson:"professionalSector" json:"professionalSector"` // nil allowed; otherwise a member of the sector set
}
