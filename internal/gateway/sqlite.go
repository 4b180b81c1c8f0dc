package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/gatherly/scout/internal/models"
)

// SQLite's built-in lower() folds ASCII only, while likePattern folds the
// query with strings.ToLower. Register a driver whose connections carry a
// Unicode-aware lower so both sides fold the same way.
func init() {
	sql.Register("sqlite3_unicode", &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("ulower", strings.ToLower, true)
		},
	})
}

// Store implements Reader using SQLite. It also exposes Insert* helpers used
// by the seed command and tests; the production write path belongs to the
// host application.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates a SQLite database at dbPath and initializes the
// entity schema. Parent directories are created if they do not exist.
func NewStore(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3_unicode", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS meetings (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		location TEXT,
		start_time TIMESTAMP,
		end_time TIMESTAMP,
		attendee_count INTEGER DEFAULT 0,
		author_name TEXT,
		is_active INTEGER DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_meetings_created_at ON meetings(created_at);

	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT,
		meeting_id TEXT,
		comment_count INTEGER DEFAULT 0,
		author_name TEXT,
		is_active INTEGER DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);

	CREATE TABLE IF NOT EXISTS comments (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL,
		post_id TEXT,
		parent_comment_id TEXT,
		author_name TEXT,
		is_active INTEGER DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_comments_created_at ON comments(created_at);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		full_name TEXT NOT NULL,
		email TEXT,
		is_active INTEGER DEFAULT 1,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// matcher builds the shared WHERE tail (active flag, date range, author
// allow-list) for a query. The text predicate is per-type because each type
// has its own text columns.
func matcherTail(q Query) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if q.ActiveOnly {
		conds = append(conds, "is_active = 1")
	}
	if q.From != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, q.From.UTC())
	}
	if q.To != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, q.To.UTC())
	}
	if len(q.Authors) > 0 {
		placeholders := strings.Repeat("?,", len(q.Authors))
		conds = append(conds, fmt.Sprintf("author_name IN (%s)", placeholders[:len(placeholders)-1]))
		for _, a := range q.Authors {
			args = append(args, a)
		}
	}

	if len(conds) == 0 {
		return "", args
	}
	return " AND " + strings.Join(conds, " AND "), args
}

// likePattern returns a case-insensitive substring LIKE pattern for text,
// with LIKE wildcards escaped.
func likePattern(text string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(text))
	return "%" + escaped + "%"
}

// FindMeetings returns meetings whose title or description contains q.Text.
func (s *Store) FindMeetings(ctx context.Context, q Query) ([]*models.Meeting, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, nil
	}
	tail, tailArgs := matcherTail(q)
	pattern := likePattern(q.Text)
	query := `SELECT id, title, description, location, start_time, end_time, attendee_count,
			author_name, is_active, created_at, updated_at
		FROM meetings
		WHERE (ulower(title) LIKE ? ESCAPE '\' OR ulower(description) LIKE ? ESCAPE '\')` + tail + `
		ORDER BY created_at DESC`
	args := append([]interface{}{pattern, pattern}, tailArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*models.Meeting
	for rows.Next() {
		var m models.Meeting
		var startTime, endTime sql.NullTime
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Location, &startTime, &endTime,
			&m.AttendeeCount, &m.AuthorName, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning meeting: %w", err)
		}
		if startTime.Valid {
			m.StartTime = startTime.Time
		}
		if endTime.Valid {
			m.EndTime = endTime.Time
		}
		meetings = append(meetings, &m)
	}
	return meetings, rows.Err()
}

// FindPosts returns posts whose title or content contains q.Text.
func (s *Store) FindPosts(ctx context.Context, q Query) ([]*models.Post, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, nil
	}
	tail, tailArgs := matcherTail(q)
	pattern := likePattern(q.Text)
	query := `SELECT id, title, content, meeting_id, comment_count,
			author_name, is_active, created_at, updated_at
		FROM posts
		WHERE (ulower(title) LIKE ? ESCAPE '\' OR ulower(content) LIKE ? ESCAPE '\')` + tail + `
		ORDER BY created_at DESC`
	args := append([]interface{}{pattern, pattern}, tailArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.MeetingID, &p.CommentCount,
			&p.AuthorName, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, &p)
	}
	return posts, rows.Err()
}

// FindComments returns comments whose content contains q.Text.
func (s *Store) FindComments(ctx context.Context, q Query) ([]*models.Comment, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, nil
	}
	tail, tailArgs := matcherTail(q)
	pattern := likePattern(q.Text)
	query := `SELECT id, content, post_id, parent_comment_id,
			author_name, is_active, created_at, updated_at
		FROM comments
		WHERE ulower(content) LIKE ? ESCAPE '\'` + tail + `
		ORDER BY created_at DESC`
	args := append([]interface{}{pattern}, tailArgs...)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		var parent sql.NullString
		if err := rows.Scan(&c.ID, &c.Content, &c.PostID, &parent,
			&c.AuthorName, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		if parent.Valid {
			c.ParentCommentID = parent.String
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// FindUsers returns users whose full name or email contains q.Text. Users
// have no author other than themselves, so the author allow-list applies to
// the full name.
func (s *Store) FindUsers(ctx context.Context, q Query) ([]*models.User, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, nil
	}
	var conds []string
	var args []interface{}
	pattern := likePattern(q.Text)
	conds = append(conds, `(ulower(full_name) LIKE ? ESCAPE '\' OR ulower(email) LIKE ? ESCAPE '\')`)
	args = append(args, pattern, pattern)
	if q.ActiveOnly {
		conds = append(conds, "is_active = 1")
	}
	if q.From != nil {
		conds = append(conds, "created_at >= ?")
		args = append(args, q.From.UTC())
	}
	if q.To != nil {
		conds = append(conds, "created_at <= ?")
		args = append(args, q.To.UTC())
	}
	if len(q.Authors) > 0 {
		placeholders := strings.Repeat("?,", len(q.Authors))
		conds = append(conds, fmt.Sprintf("full_name IN (%s)", placeholders[:len(placeholders)-1]))
		for _, a := range q.Authors {
			args = append(args, a)
		}
	}
	query := `SELECT id, full_name, email, is_active, created_at, updated_at
		FROM users
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// Titles returns up to limit distinct active entity titles and user names
// for the suggestion corpus, newest first.
func (s *Store) Titles(ctx context.Context, limit int) ([]Title, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `
	SELECT title, 'meeting' AS type, created_at FROM meetings WHERE is_active = 1 AND title != ''
	UNION ALL
	SELECT title, 'post' AS type, created_at FROM posts WHERE is_active = 1 AND title != ''
	UNION ALL
	SELECT full_name, 'user' AS type, created_at FROM users WHERE is_active = 1 AND full_name != ''
	ORDER BY created_at DESC
	LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying titles: %w", err)
	}
	defer rows.Close()

	var titles []Title
	seen := make(map[string]struct{})
	for rows.Next() {
		var text, typ string
		var createdAt time.Time
		if err := rows.Scan(&text, &typ, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		key := strings.ToLower(text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		titles = append(titles, Title{Text: text, Type: models.EntityType(typ)})
	}
	return titles, rows.Err()
}

// CountEntities returns the number of stored entities per type.
func (s *Store) CountEntities(ctx context.Context) (map[models.EntityType]int64, error) {
	counts := make(map[models.EntityType]int64, 4)
	tables := map[models.EntityType]string{
		models.EntityMeeting: "meetings",
		models.EntityPost:    "posts",
		models.EntityComment: "comments",
		models.EntityUser:    "users",
	}
	for typ, table := range tables {
		var n int64
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
			return nil, fmt.Errorf("counting %s: %w", table, err)
		}
		counts[typ] = n
	}
	return counts, nil
}

// InsertMeeting inserts a meeting. Fixture/seed helper.
func (s *Store) InsertMeeting(ctx context.Context, m *models.Meeting) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = m.CreatedAt
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meetings (id, title, description, location, start_time, end_time,
			attendee_count, author_name, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Title, m.Description, m.Location, m.StartTime, m.EndTime,
		m.AttendeeCount, m.AuthorName, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// InsertPost inserts a post. Fixture/seed helper.
func (s *Store) InsertPost(ctx context.Context, p *models.Post) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (id, title, content, meeting_id, comment_count,
			author_name, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Content, p.MeetingID, p.CommentCount,
		p.AuthorName, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// InsertComment inserts a comment. Fixture/seed helper.
func (s *Store) InsertComment(ctx context.Context, c *models.Comment) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (id, content, post_id, parent_comment_id,
			author_name, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Content, c.PostID, c.ParentCommentID,
		c.AuthorName, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

// InsertUser inserts a user. Fixture/seed helper.
func (s *Store) InsertUser(ctx context.Context, u *models.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, full_name, email, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.FullName, u.Email, u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
