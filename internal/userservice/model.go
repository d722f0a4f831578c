package userservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sushihentaime/blogcrud/internal/common"
)

var (
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrDuplicateEmail    = errors.New("duplicate email")
)

var lookupAttributes = map[Attribute]bool{
	AttributeID:       true,
	AttributeUsername: true,
	AttributeEmail:    true,
}

func newUserModel(db *sql.DB) *DBModel {
	return &DBModel{db: db}
}

// duplicateError translates unique violations on users into sentinel errors.
func duplicateError(err error) error {
	switch {
	case common.UniqueError(err, "users_username_key"):
		return ErrDuplicateUsername
	case common.UniqueError(err, "users_email_key"):
		return ErrDuplicateEmail
	default:
		return err
	}
}

// insertUser inserts u and calls announce before committing. The row is rolled back when announce fails.
func (m *DBModel) insertUser(ctx context.Context, u *User, announce func(*User) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	args := []any{
		u.Username,
		u.Email,
		u.Password.hash,
	}

	err = tx.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return duplicateError(err)
	}

	if err := announce(u); err != nil {
		return err
	}

	return tx.Commit()
}

// findUserByAttribute returns the single user whose attr column equals value.
func (m *DBModel) findUserByAttribute(ctx context.Context, attr Attribute, value any) (*User, error) {
	if !lookupAttributes[attr] {
		return nil, fmt.Errorf("users cannot be looked up by %q", attr)
	}

	query := `
		SELECT id, username, email, password, created_at, updated_at
		FROM users
		WHERE ` + string(attr) + ` = $1`

	var u User

	err := m.db.QueryRowContext(ctx, query, value).Scan(&u.ID, &u.Username, &u.Email, &u.Password.hash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &u, nil
}

// updateUser applies a partial update and returns the number of rows that changed.
func (m *DBModel) updateUser(ctx context.Context, id int, fields []common.Field) (int64, error) {
	query, args, err := common.BuildUpdate("users", UpdatableFields, fields, id)
	if err != nil {
		return 0, err
	}

	res, err := m.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, duplicateError(err)
	}

	return res.RowsAffected()
}
