package models

import "time"

// Roles assignable to a user account.
const (
	RoleClient    = "client"
	RoleTherapist = "therapist"
	RoleAdmin     = "admin"
)

// User is a platform account. Client accounts are provisioned lazily by the
// booking workflow on the first successful payment; the email is stored
// lowercased and carries a unique index.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	FullName     string    `bson:"full_name" json:"full_name"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
