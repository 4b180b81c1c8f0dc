// Package normalize converts per-type entities into the uniform search
// candidate record. Every projection is pure and total: a well-formed entity
// always normalizes without error.
package normalize

import "github.com/gatherly/scout/internal/models"

// Meeting projects a meeting into a search candidate.
// Title carries the meeting title, content its description.
func Meeting(m *models.Meeting) *models.SearchCandidate {
	return &models.SearchCandidate{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Description,
		Type:       models.EntityMeeting,
		AuthorName: m.AuthorName,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		Metadata: map[string]interface{}{
			"location":       m.Location,
			"start_time":     m.StartTime,
			"end_time":       m.EndTime,
			"attendee_count": m.AttendeeCount,
		},
	}
}

// Post projects a post into a search candidate.
func Post(p *models.Post) *models.SearchCandidate {
	return &models.SearchCandidate{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		Type:       models.EntityPost,
		AuthorName: p.AuthorName,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Metadata: map[string]interface{}{
			"meeting_id":    p.MeetingID,
			"comment_count": p.CommentCount,
		},
	}
}

// Comment projects a comment into a search candidate. Comments have no title;
// they match on content only.
func Comment(c *models.Comment) *models.SearchCandidate {
	return &models.SearchCandidate{
		ID:         c.ID,
		Title:      "",
		Content:    c.Content,
		Type:       models.EntityComment,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		Metadata: map[string]interface{}{
			"post_id":           c.PostID,
			"parent_comment_id": c.ParentCommentID,
			"is_reply":          c.IsReply(),
		},
	}
}

// User projects a user into a search candidate. The full name acts as the
// title so name matches rank like title matches.
func User(u *models.User) *models.SearchCandidate {
	return &models.SearchCandidate{
		ID:         u.ID,
		Title:      u.FullName,
		Content:    u.Email,
		Type:       models.EntityUser,
		AuthorName: u.FullName,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
		Metadata:   map[string]interface{}{},
	}
}
