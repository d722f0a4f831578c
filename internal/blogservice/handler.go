package blogservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/blogcrud/internal/common"
)

func NewBlogService(db *sql.DB) *BlogService {
	return &BlogService{m: newBlogModel(db)}
}

// GetBlogs returns every blog.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	return s.m.getBlogs(ctx)
}

// CreateBlog creates a blog owned by callerID. Nothing is written when a required field is missing.
func (s *BlogService) CreateBlog(ctx context.Context, callerID int, req *CreateBlogRequest) (*Blog, error) {
	v := common.NewValidator()
	validateCreate(v, req)
	validateInt(v, callerID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	blog := &Blog{
		Title:       *req.Title,
		Description: sanitizeMarkdown(*req.Description),
		UserID:      callerID,
	}

	if err := s.m.insert(ctx, blog); err != nil {
		return nil, err
	}

	return blog, nil
}

// GetBlogByID returns a blog by its ID. Any caller may read any blog.
func (s *BlogService) GetBlogByID(ctx context.Context, id int) (*Blog, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBlogById(ctx, id)
}

// UpdateBlog applies the allow-listed fields of req to blog id. Only the owner may update it.
// It reports false when no row changed.
func (s *BlogService) UpdateBlog(ctx context.Context, id, callerID int, req *UpdateBlogRequest) (bool, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateUpdate(v, req)
	if !v.Valid() {
		return false, v.ValidationError()
	}

	if err := s.authorize(ctx, id, callerID); err != nil {
		return false, err
	}

	rows, err := s.m.updateBlog(ctx, id, req.fields())
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// DeleteBlog deletes blog id. Only the owner may delete it. It reports false when no row was removed.
func (s *BlogService) DeleteBlog(ctx context.Context, id, callerID int) (bool, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return false, v.ValidationError()
	}

	if err := s.authorize(ctx, id, callerID); err != nil {
		return false, err
	}

	rows, err := s.m.deleteBlog(ctx, id)
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// authorize re-reads the blog and checks that callerID owns it.
func (s *BlogService) authorize(ctx context.Context, id, callerID int) error {
	blog, err := s.m.getBlogById(ctx, id)
	if err != nil {
		return err
	}

	if blog.UserID != callerID {
		return common.ErrUnauthorized
	}

	return nil
}
