package commentservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/bloglist/internal/common"
)

func NewCommentService(db *sql.DB, c *common.Cache) *CommentService {
	return &CommentService{m: newCommentModel(db), c: c}
}

// AddComment attaches a comment to the target blog. An unknown blog id
// surfaces as ErrBlogNotFound via the foreign key on comments.blog_id.
func (s *CommentService) AddComment(ctx context.Context, blogID int, title string) (*Comment, error) {
	v := common.NewValidator()
	validateTitle(v, title)
	validateInt(v, blogID, "blog_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	comment := Comment{
		Title:  title,
		BlogID: blogID,
	}

	err := s.m.insert(ctx, &comment)
	if err != nil {
		return nil, err
	}

	// comments are inlined in the blog list response
	s.c.Delete(common.CacheKeyBlogs())

	return &comment, nil
}
