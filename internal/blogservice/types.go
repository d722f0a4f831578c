package blogservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/blogcrud/internal/common"
)

// UpdatableFields is the allow-list of blog columns a partial update may touch.
var UpdatableFields = []string{"title", "description"}

type Blog struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      int       `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BlogModel struct {
	db *sql.DB
}

type BlogService struct {
	m *BlogModel
}

// CreateBlogRequest carries the client supplied fields. The owner is never read from the body.
type CreateBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// UpdateBlogRequest holds the allow-listed fields. A nil field was not sent.
type UpdateBlogRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

func (r *UpdateBlogRequest) fields() []common.Field {
	var fields []common.Field
	if r.Title != nil {
		fields = append(fields, common.Field{Name: "title", Value: *r.Title})
	}
	if r.Description != nil {
		fields = append(fields, common.Field{Name: "description", Value: sanitizeMarkdown(*r.Description)})
	}
	return fields
}
