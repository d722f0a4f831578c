package userservice

import (
	"database/sql"
	"time"

	"github.com/sushihentaime/blogcrud/internal/common"
)

// Attribute names a users column that can be used for single-row lookups.
type Attribute string

const (
	AttributeID       Attribute = "id"
	AttributeUsername Attribute = "username"
	AttributeEmail    Attribute = "email"

	AccessTokenTime time.Duration = 7 * 24 * time.Hour
)

// UpdatableFields is the allow-list of columns a user may change on their own profile.
var UpdatableFields = []string{"username", "email"}

var AnonymousUser = User{}

type UserService struct {
	m  *DBModel
	mb common.MessageProducer
	c  *common.Cache
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  Password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the public projection of a user.
type Profile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// Password only ever holds the bcrypt hash.
type Password struct {
	hash []byte
}

type Token struct {
	Plain  string    `json:"token"`
	Hash   []byte    `json:"-"`
	UserID int       `json:"-"`
	Expiry time.Time `json:"expiry"`
}

// UpdateUserRequest holds the allow-listed profile fields. A nil field was not sent.
type UpdateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (r *UpdateUserRequest) fields() []common.Field {
	var fields []common.Field
	if r.Username != nil {
		fields = append(fields, common.Field{Name: "username", Value: *r.Username})
	}
	if r.Email != nil {
		fields = append(fields, common.Field{Name: "email", Value: *r.Email})
	}
	return fields
}

// UserCreatedEvent is published on the user exchange after registration.
type UserCreatedEvent struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
