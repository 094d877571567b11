package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

type Blog struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author,omitempty"`
	URL    string `json:"url"`
	Likes  int    `json:"likes"`
	UserID int    `json:"user_id"`

	// User and Comments are populated on the list read path only. Only
	// the selected fields are inlined; the password hash never leaves
	// the users table.
	User     *BlogUser     `json:"user,omitempty"`
	Comments []BlogComment `json:"comments"`

	CreatedAt time.Time `json:"created_at"`
}

type BlogUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

type BlogComment struct {
	Title string `json:"title"`
}

type CreateBlogRequest struct {
	Title  string
	Author string
	URL    string
	Likes  int
	UserID int
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
	c *common.Cache
}
