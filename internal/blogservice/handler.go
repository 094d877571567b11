package blogservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/bloglist/internal/common"
)

func NewBlogService(db *sql.DB, c *common.Cache) *BlogService {
	return &BlogService{m: newBlogModel(db), c: c}
}

// CreateBlog persists a new blog owned by the acting user. Likes defaults
// to zero upstream when the field is absent.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateURL(v, req.URL)
	validateLikes(v, req.Likes)
	validateInt(v, req.UserID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := Blog{
		Title:    req.Title,
		Author:   req.Author,
		URL:      req.URL,
		Likes:    req.Likes,
		UserID:   req.UserID,
		Comments: []BlogComment{},
	}

	err := s.m.insert(ctx, &blog)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return &blog, nil
}

// GetBlogs returns every blog with its owner and comments expanded.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if cached, ok := s.c.Get(common.CacheKeyBlogs()); ok {
		if blogs, ok := cached.([]Blog); ok {
			return blogs, nil
		}
	}

	blogs, err := s.m.getAll(ctx)
	if err != nil {
		return nil, err
	}

	s.c.Set(common.CacheKeyBlogs(), blogs)

	return blogs, nil
}

// UpdateLikes replaces the stored likes value. No ownership check is
// performed here: the route is open on purpose.
func (s *BlogService) UpdateLikes(ctx context.Context, id, likes int) (*Blog, error) {
	v := common.NewValidator()
	validateLikes(v, likes)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog, err := s.m.updateLikes(ctx, id, likes)
	if err != nil {
		return nil, err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return blog, nil
}

// DeleteBlog removes a blog and its comments. The blog's own user_id is
// the authority for the ownership decision.
func (s *BlogService) DeleteBlog(ctx context.Context, blogID, userID int) error {
	ownerID, err := s.m.getOwner(ctx, blogID)
	if err != nil {
		return err
	}

	if ownerID != userID {
		return ErrNotPermitted
	}

	err = s.m.deleteBlog(ctx, blogID)
	if err != nil {
		return err
	}

	s.c.Delete(common.CacheKeyBlogs())

	return nil
}
