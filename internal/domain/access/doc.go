// Package access implements the portal's role-based access control: a flat
// lookup from roles to permission keys, plus the finance visibility scopes
// derived from those permissions.
package access
