// Package types defines the entity types, scope enumeration, sentinel
// errors, and configuration for the memoir knowledge store. The store
// backend in internal/sqlite persists these types; the confidence model
// and the override resolver operate on in-memory projections of them.
package types
