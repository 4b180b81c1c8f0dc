// Package gateway provides read-only access to searchable entities.
// The search engine treats a Reader as an opaque capability: it knows
// nothing about the underlying schema or SQL.
package gateway

import (
	"context"
	"time"

	"github.com/gatherly/scout/internal/models"
)

// Query is the filter value object passed to every entity matcher. Each
// entity type has its own fixed matcher for it; there is no dynamic
// predicate composition.
type Query struct {
	// Text is matched as a case-insensitive substring across the entity
	// type's text fields. Empty matches nothing.
	Text string

	// ActiveOnly excludes inactive/soft-deleted entities.
	ActiveOnly bool

	// From/To bound the entity creation time, inclusive, when set.
	From *time.Time
	To   *time.Time

	// Authors restricts matches to these author names. Empty means any.
	Authors []string
}

// Title is one entry of the suggestion corpus: an entity title or user name
// together with the type it came from.
type Title struct {
	Text string
	Type models.EntityType
}

// Reader is the read-only entity gateway consumed by the search engine and
// the suggestion engine.
type Reader interface {
	FindMeetings(ctx context.Context, q Query) ([]*models.Meeting, error)
	FindPosts(ctx context.Context, q Query) ([]*models.Post, error)
	FindComments(ctx context.Context, q Query) ([]*models.Comment, error)
	FindUsers(ctx context.Context, q Query) ([]*models.User, error)

	// Titles returns up to limit distinct active entity titles/names for the
	// suggestion corpus.
	Titles(ctx context.Context, limit int) ([]Title, error)

	// CountEntities returns the number of stored entities per type.
	CountEntities(ctx context.Context) (map[models.EntityType]int64, error)

	Close() error
}
