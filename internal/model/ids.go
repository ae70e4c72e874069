package model

import (
	"fmt"

	"github.com/google/uuid"
)

// tableNamespace is the fixed UUID namespace used to derive deterministic
// Table identity from a (database_type, name, catalog, schema) tuple, so
// re-parsing the same source yields the same Table UUID.
var tableNamespace = uuid.MustParse("6f8c9b2a-7e3d-4a1b-9c5e-2d8f4a6b1c3e")

// governanceNamespace is the fixed UUID namespace for Decision and
// Knowledge numbering, matching the standard URL namespace the spec calls
// for (uuid.NameSpaceURL).
var governanceNamespace = uuid.NameSpaceURL

// DeriveTableID returns the stable v5 UUID for a table identified by its
// (database type, name, catalog, schema) tuple. Calling this twice with the
// same tuple always returns the same id.
func DeriveTableID(databaseType DatabaseType, name, catalog, schema string) string {
	key := fmt.Sprintf("%s|%s|%s|%s", databaseType, name, catalog, schema)
	return uuid.NewSHA1(tableNamespace, []byte(key)).String()
}

// NewTableID generates a fresh random Table UUID, for callers that have no
// stable identity tuple to derive from.
func NewTableID() string {
	return uuid.New().String()
}

// DecisionUUID derives the deterministic UUID for a Decision number. It is
// a pure function of n: re-deriving for the same n always yields the same
// UUID (spec.md §8, "Deterministic UUIDs").
func DecisionUUID(number int64) string {
	return uuid.NewSHA1(governanceNamespace, []byte(fmt.Sprintf("decision:%d", number))).String()
}

// KnowledgeUUID derives the deterministic UUID for a Knowledge article
// number, mirroring DecisionUUID.
func KnowledgeUUID(number int64) string {
	return uuid.NewSHA1(governanceNamespace, []byte(fmt.Sprintf("knowledge:%d", number))).String()
}

// NewID generates a fresh random UUID for entities with no deterministic
// identity (Relationship, freshly-created Workspace members, and so on).
func NewID() string {
	return uuid.New().String()
}
