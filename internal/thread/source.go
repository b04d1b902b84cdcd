package thread

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver
)

var (
	// ErrNotFound is returned when the thread file does not exist.
	ErrNotFound = errors.New("thread file not found")
	// ErrUnsupported is returned for file extensions no source understands.
	ErrUnsupported = errors.New("unsupported thread file")
)

// Open reads the thread stored at path. JSON exports and SQLite databases are
// supported; the format is chosen by extension.
func Open(path string) (*Thread, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, err
	}

	var posts []Post
	switch ext := strings.ToLower(filepath.Ext(abs)); {
	case isJSON(ext):
		posts, err = readJSON(abs)
	case isSQLite(ext):
		posts, err = readSQLite(abs)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("read thread %s: %w", path, err)
	}

	t := &Thread{
		Source: abs,
		Name:   DisplayName(abs),
		Posts:  posts,
	}
	if len(posts) > 0 {
		t.ID = posts[0].ThreadID
	}
	return t, nil
}

// jsonPost mirrors one record of a JSON thread export. post_date shows up
// both as a number and as a string in real exports.
type jsonPost struct {
	PostID   int64           `json:"post_id"`
	ThreadID int64           `json:"thread_id"`
	Username string          `json:"username"`
	Message  string          `json:"message"`
	PostDate json.RawMessage `json:"post_date"`
}

func readJSON(path string) ([]Post, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []jsonPost
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(records))
	for _, r := range records {
		posts = append(posts, Post{
			ID:        r.PostID,
			ThreadID:  r.ThreadID,
			Author:    r.Username,
			Body:      r.Message,
			Timestamp: rawTimestamp(r.PostDate),
		})
	}
	return posts, nil
}

func rawTimestamp(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

const selectPosts = `SELECT post_id, thread_id, username, message, post_date FROM posts ORDER BY rowid`

func readSQLite(path string) ([]Post, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(selectPosts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []Post
	for rows.Next() {
		var (
			p        Post
			threadID sql.NullInt64
			author   sql.NullString
			body     sql.NullString
			date     sql.NullString
		)
		if err := rows.Scan(&p.ID, &threadID, &author, &body, &date); err != nil {
			return nil, err
		}
		p.ThreadID = threadID.Int64
		p.Author = author.String
		p.Body = body.String
		p.Timestamp = date.String
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func isJSON(ext string) bool {
	return ext == ".json"
}

func isSQLite(ext string) bool {
	switch ext {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}
