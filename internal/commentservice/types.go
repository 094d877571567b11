package commentservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
)

type Comment struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	BlogID    int       `json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentModel struct {
	db *sql.DB
}

type CommentService struct {
	m *CommentModel
	c *common.Cache
}
