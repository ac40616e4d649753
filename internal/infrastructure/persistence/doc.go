// Package persistence provides the GORM-backed repository implementations,
// the schema migration and the transaction runner used for invite
// redemption. Driver errors are translated into the domain's sentinel errors.
package persistence
