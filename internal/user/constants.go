package user

import "time"

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 5 * time.Minute
)

// Operation names used in logs and metrics
const (
	OpCreate  = "create"
	OpReplace = "replace"
	OpPatch   = "patch"
	OpDelete  = "delete"
)

// Operation outcomes
const (
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeDeleted  = "deleted"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeFailed   = "failed"
)

// Patchable fields, named as they appear on the wire
const (
	FieldLogin     Field = "login"
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
)

// JSON Patch operations
const (
	PatchOpAdd     = "add"
	PatchOpReplace = "replace"
	PatchOpRemove  = "remove"
)
