package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sushihentaime/blogcrud/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid authentication credentials")
)

func NewUserService(db *sql.DB, mb common.MessageProducer, c *common.Cache) *UserService {
	return &UserService{
		m:  newUserModel(db),
		mb: mb,
		c:  c,
	}
}

// CreateUser creates a new user account and publishes a user.created event.
// The account is only kept when the event was published.
func (s *UserService) CreateUser(ctx context.Context, username, email, password string) (*User, error) {
	v := common.NewValidator()
	validateUsername(v, username)
	validateEmail(v, email)
	validatePassword(v, password)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Username: username,
		Email:    email,
	}

	err := u.Password.set(password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u, func(u *User) error {
		event, err := json.Marshal(UserCreatedEvent{ID: u.ID, Username: u.Username, Email: u.Email})
		if err != nil {
			return err
		}

		return s.mb.Publish(ctx, event, common.UserCreatedKey, common.UserExchange)
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// LoginUser checks the credentials and issues a new access token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*Token, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	v.Check(password != "", "password", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	user, err := s.m.findUserByAttribute(ctx, AttributeUsername, username)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return nil, ErrAuthenticationFailure
		default:
			return nil, err
		}
	}

	ok, err := user.Password.matches(password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAuthenticationFailure
	}

	return s.m.createToken(ctx, user.ID, AccessTokenTime)
}

// LogoutUser revokes every access token of the user.
func (s *UserService) LogoutUser(ctx context.Context, userID int) error {
	v := common.NewValidator()
	validateInt(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	err := s.m.deleteTokens(ctx, userID)
	if err != nil {
		return err
	}

	s.evict(userID)

	return nil
}

// GetUserByAccessToken resolves a plaintext access token into its user. Results are cached.
func (s *UserService) GetUserByAccessToken(ctx context.Context, token string) (*User, error) {
	v := common.NewValidator()
	ValidateToken(v, token)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	hash := hashToken(token)
	key := common.CacheKeyUserByAccessToken(hash)

	if s.c != nil {
		if cached, ok := s.c.Get(key); ok {
			if u, ok := cached.(*User); ok {
				return u, nil
			}
		}
	}

	u, expiry, err := s.m.getUserByToken(ctx, hash)
	if err != nil {
		return nil, err
	}

	if s.c != nil {
		s.c.SetUntil(key, u, expiry)
	}

	return u, nil
}

// FindUserByAttribute looks a single user up by one of the lookup attributes.
func (s *UserService) FindUserByAttribute(ctx context.Context, attr Attribute, value any) (*User, error) {
	return s.m.findUserByAttribute(ctx, attr, value)
}

// GetUser returns the public profile of user id. Callers may only read their own profile.
func (s *UserService) GetUser(ctx context.Context, id, callerID int) (*Profile, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u, err := s.FindUserByAttribute(ctx, AttributeID, id)
	if err != nil {
		return nil, err
	}

	if u.ID != callerID {
		return nil, common.ErrUnauthorized
	}

	return &Profile{ID: u.ID, Username: u.Username}, nil
}

// UpdateUser applies the allow-listed fields of req to user id. It reports false when no row changed.
func (s *UserService) UpdateUser(ctx context.Context, id, callerID int, req *UpdateUserRequest) (bool, error) {
	v := common.NewValidator()
	validateInt(v, id, "id")
	validateUpdate(v, req)
	if !v.Valid() {
		return false, v.ValidationError()
	}

	u, err := s.FindUserByAttribute(ctx, AttributeID, id)
	if err != nil {
		return false, err
	}

	if u.ID != callerID {
		return false, common.ErrUnauthorized
	}

	rows, err := s.m.updateUser(ctx, id, req.fields())
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateUsername):
			return false, common.NewStatusError(http.StatusConflict, "this username is already taken", err)
		case errors.Is(err, ErrDuplicateEmail):
			return false, common.NewStatusError(http.StatusConflict, "a user with this email address already exists", err)
		default:
			return false, err
		}
	}

	if rows == 0 {
		return false, nil
	}

	s.evict(id)

	return true, nil
}

// evict drops cached token lookups that resolve to the user.
func (s *UserService) evict(userID int) {
	if s.c == nil {
		return
	}

	s.c.DeleteFunc(func(key string, value interface{}) bool {
		u, ok := value.(*User)
		return ok && u.ID == userID
	})
}

func (u *User) IsAnonymous() bool {
	return u == &AnonymousUser
}
