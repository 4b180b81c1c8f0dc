// Package models defines core data structures for entities, search requests,
// and search results.
package models

import (
	"fmt"
	"strings"
	"time"
)

// EntityType identifies which kind of entity a search result came from.
type EntityType string

const (
	// EntityMeeting is a scheduled meeting/event.
	EntityMeeting EntityType = "meeting"
	// EntityPost is a discussion post attached to a meeting.
	EntityPost EntityType = "post"
	// EntityComment is a comment on a post (possibly a reply).
	EntityComment EntityType = "comment"
	// EntityUser is a platform user.
	EntityUser EntityType = "user"
)

// AllEntityTypes returns every searchable entity type in canonical order.
// The order is stable: it fixes the merge order for equal sort keys.
func AllEntityTypes() []EntityType {
	return []EntityType{EntityMeeting, EntityPost, EntityComment, EntityUser}
}

// ParseEntityType parses a string into an EntityType.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(strings.ToLower(strings.TrimSpace(s))) {
	case EntityMeeting:
		return EntityMeeting, nil
	case EntityPost:
		return EntityPost, nil
	case EntityComment:
		return EntityComment, nil
	case EntityUser:
		return EntityUser, nil
	default:
		return "", fmt.Errorf("unknown entity type: %q", s)
	}
}

// Meeting is a scheduled event with attendance.
type Meeting struct {
	ID            string    `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	Description   string    `json:"description" db:"description"`
	Location      string    `json:"location" db:"location"`
	StartTime     time.Time `json:"start_time" db:"start_time"`
	EndTime       time.Time `json:"end_time" db:"end_time"`
	AttendeeCount int       `json:"attendee_count" db:"attendee_count"`
	AuthorName    string    `json:"author_name" db:"author_name"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// Post is a discussion post attached to a meeting.
type Post struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	MeetingID    string    `json:"meeting_id" db:"meeting_id"`
	CommentCount int       `json:"comment_count" db:"comment_count"`
	AuthorName   string    `json:"author_name" db:"author_name"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Comment is a comment on a post. A comment with a parent is a reply.
type Comment struct {
	ID              string    `json:"id" db:"id"`
	Content         string    `json:"content" db:"content"`
	PostID          string    `json:"post_id" db:"post_id"`
	ParentCommentID string    `json:"parent_comment_id,omitempty" db:"parent_comment_id"`
	AuthorName      string    `json:"author_name" db:"author_name"`
	IsActive        bool      `json:"is_active" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != ""
}

// User is a platform user.
type User struct {
	ID        string    `json:"id" db:"id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
