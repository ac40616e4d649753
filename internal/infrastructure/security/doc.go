// Package security implements password hashing, session tokens and invite
// token generation.
package security
