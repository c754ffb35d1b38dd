// Package models contains the GORM persistence models. Domain entities never
// carry gorm tags; each model maps to exactly one domain type through
// ToDomain/FromDomain.
package models
