package domain

import "errors"

// ErrBadAuthentication is returned when a request presents no client token or
// a token that does not resolve to a client record.
var ErrBadAuthentication = errors.New("bad authentication")

var ErrClientNotFound = errors.New("client not found")

// Client is a registered device, distinct from the human user that owns it.
// Key is the standing secret the device presents on every request; it is
// stored verbatim (a capability secret, not a password) and compared in
// constant time.
type Client struct {
	ID     string `json:"client_id"`
	Key    string `json:"-"`
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}
