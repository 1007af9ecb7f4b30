package domain

import "errors"

// Role values. The single bootstrap administrator is role 0; ordinary users
// are role 1.
const (
	RoleAdmin  = 0
	RoleMember = 1
)

var ErrBadCredentials = errors.New("bad credentials")
var ErrUserNotFound = errors.New("user not found")

// User is a human account. Clients (devices) belong to exactly one user and
// every message is scoped to its owning user.
type User struct {
	ID           string `json:"user_id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         int    `json:"role"`
}
