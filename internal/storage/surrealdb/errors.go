// Package surrealdb implements the Plano storage interfaces on SurrealDB.
package surrealdb

import "strings"

// isNotFoundError reports whether err is SurrealDB's record-not-found
// condition, which callers treat as an absent record rather than a failure.
func isNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no record")
}
