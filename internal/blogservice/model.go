package blogservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/blogcrud/internal/common"
)

var (
	ErrUserForeignKey = errors.New("user_id does not exist")
)

func newBlogModel(db *sql.DB) *BlogModel {
	return &BlogModel{db: db}
}

func (m *BlogModel) insert(ctx context.Context, blog *Blog) error {
	query := `
		INSERT INTO blogs (title, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := m.db.QueryRowContext(ctx, query, blog.Title, blog.Description, blog.UserID).Scan(&blog.ID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		switch {
		case common.ForeignKeyError(err, "blogs_user_id_fkey"):
			return ErrUserForeignKey
		default:
			return err
		}
	}

	return nil
}

func (m *BlogModel) getBlogById(ctx context.Context, id int) (*Blog, error) {
	query := `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM blogs
		WHERE id = $1`

	var blog Blog
	err := m.db.QueryRowContext(ctx, query, id).Scan(&blog.ID, &blog.Title, &blog.Description, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &blog, nil
}

// getBlogs returns every blog ordered by id.
func (m *BlogModel) getBlogs(ctx context.Context) ([]Blog, error) {
	query := `
		SELECT id, title, description, user_id, created_at, updated_at
		FROM blogs
		ORDER BY id`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blogs := []Blog{}
	for rows.Next() {
		var blog Blog
		err := rows.Scan(&blog.ID, &blog.Title, &blog.Description, &blog.UserID, &blog.CreatedAt, &blog.UpdatedAt)
		if err != nil {
			return nil, err
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blogs, nil
}

// updateBlog applies a partial update and returns the number of rows that changed.
func (m *BlogModel) updateBlog(ctx context.Context, id int, fields []common.Field) (int64, error) {
	query, args, err := common.BuildUpdate("blogs", UpdatableFields, fields, id)
	if err != nil {
		return 0, err
	}

	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

func (m *BlogModel) deleteBlog(ctx context.Context, id int) (int64, error) {
	query := `
		DELETE FROM blogs
		WHERE id = $1`

	res, err := m.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}
