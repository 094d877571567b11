package commentservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrBlogNotFound = errors.New("blog not found")
)

func newCommentModel(db *sql.DB) *CommentModel {
	return &CommentModel{db: db}
}

func foreignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *CommentModel) insert(ctx context.Context, comment *Comment) error {
	query := `
		INSERT INTO comments (title, blog_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, comment.Title, comment.BlogID).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		switch {
		case foreignKeyError(err, "comments_blog_id_fkey"):
			return ErrBlogNotFound
		default:
			return err
		}
	}

	return nil
}
