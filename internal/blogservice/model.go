package blogservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrUserForeignKey = errors.New("user_id does not exist")
	ErrNotPermitted   = errors.New("user does not own this blog")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

// ForeignKeyError is a helper function to check if the error is a foreign key constraint error.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, author, url, likes, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	args := []any{blog.Title, blog.Author, blog.URL, blog.Likes, blog.UserID}

	err := m.db.QueryRowContext(ctx, query, args...).Scan(&blog.ID, &blog.CreatedAt)
	if err != nil {
		switch {
		case ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

// getAll returns every blog in insertion order with the owner and comment
// relations inlined. The owner join selects username and name only.
func (m *BlogModel) getAll(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT b.id, b.title, b.author, b.url, b.likes, b.user_id, b.created_at, u.username, u.name
		FROM blogs b
		JOIN users u ON b.user_id = u.id
		ORDER BY b.id ASC`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	index := make(map[int]int)
	for rows.Next() {
		var blog Blog
		var user BlogUser
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt, &user.Username, &user.Name)
		if err != nil {
			return nil, err
		}
		blog.User = &user
		blog.Comments = []BlogComment{}
		index[blog.ID] = len(blogs)
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	commentQuery := `
		SELECT blog_id, title
		FROM comments
		ORDER BY id ASC`

	commentRows, err := m.db.QueryContext(ctx, commentQuery)
	if err != nil {
		return nil, err
	}
	defer commentRows.Close()

	for commentRows.Next() {
		var blogID int
		var comment BlogComment
		err := commentRows.Scan(&blogID, &comment.Title)
		if err != nil {
			return nil, err
		}
		if i, ok := index[blogID]; ok {
			blogs[i].Comments = append(blogs[i].Comments, comment)
		}
	}

	if err := commentRows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

func (m *BlogModel) getOwner(ctx context.Context, id int) (int, error) {
	query := `
		SELECT user_id
		FROM blogs
		WHERE id = $1`

	var ownerID int
	err := m.db.QueryRowContext(ctx, query, id).Scan(&ownerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return ownerID, nil
}

func (m *BlogModel) updateLikes(ctx context.Context, id, likes int) (*Blog, error) {
	query := `
		UPDATE blogs
		SET likes = $1
		WHERE id = $2
		RETURNING id, title, author, url, likes, user_id, created_at`

	var blog Blog
	err := m.db.QueryRowContext(ctx, query, likes, id).Scan(&blog.ID, &blog.Title, &blog.Author, &blog.URL, &blog.Likes, &blog.UserID, &blog.CreatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}

	blog.Comments = []BlogComment{}

	return &blog, nil
}

// deleteBlog removes the blog row. The comments table declares ON DELETE
// CASCADE on blog_id, so dependent comments go with it.
func (m *BlogModel) deleteBlog(ctx context.Context, id int) error {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows != 1 {
		switch {
		case rows == 0:
			return ErrRecordNotFound
		default:
			return fmt.Errorf("expected 1 row to be affected, got %d", rows)
		}
	}

	return nil
}
