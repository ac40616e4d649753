// Package models contains the GORM database models. They are kept apart from
// the domain entities and converted with ToDomain/FromDomain.
package models
