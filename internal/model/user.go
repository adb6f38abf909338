package model

import "time"

// Role values stored on a user record.  A user created through the
// idempotent sign-in upsert starts with no role at all; promotion is the
// only mutation and a role is never taken away automatically.
const (
    RoleAdmin      = "admin"
    RoleInstructor = "instructor"
)

// User represents an application user as stored in the `users` table.
// Email is the unique key; the record is the single authority for the
// user's role.  Session tokens are derived, time-boxed credentials and are
// always cross-checked against this record for privilege decisions.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Email     – unique email address (lower-cased).
//  Name      – display name supplied at sign-in.
//  PhotoURL  – avatar URL supplied at sign-in.
//  Role      – "" (none), "admin" or "instructor".
//  CreatedAt – timestamp of first sign-in.
type User struct {
    ID        uint64    `json:"id"`
    Email     string    `json:"email"`
    Name      string    `json:"name"`
    PhotoURL  string    `json:"photoURL,omitempty"`
    Role      string    `json:"role,omitempty"`
    CreatedAt time.Time `json:"createdAt"`
}
