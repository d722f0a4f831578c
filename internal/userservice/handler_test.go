package userservice

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/blogcrud/internal/common"
)

func TestGetUserByAccessToken_CacheEndsWithToken(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	u := createTestUser(t, s, "testuser")
	ctx := context.Background()

	token, err := s.m.createToken(ctx, u.ID, 2*time.Second)
	require.NoError(t, err)

	got, err := s.GetUserByAccessToken(ctx, token.Plain)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	time.Sleep(3 * time.Second)

	_, err = s.GetUserByAccessToken(ctx, token.Plain)
	assert.Equal(t, common.ErrRecordNotFound, err)
}

func setupTestEnvironment(t *testing.T) (*UserService, *sql.DB, *MockMessageProducer, func() error) {
	db := common.TestDB("file://../../migrations", t)
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	mb := new(MockMessageProducer)
	mb.On("Publish", mock.Anything, mock.Anything, common.UserCreatedKey, common.UserExchange).Return(nil)

	cleanup := func() error {
		_, err := db.Exec("DELETE FROM users")
		if err != nil {
			return err
		}

		cache.Flush()

		return nil
	}

	return NewUserService(db, mb, cache), db, mb, cleanup
}

func createTestUser(t *testing.T, s *UserService, username string) *User {
	t.Helper()

	u, err := s.CreateUser(context.Background(), username, username+"@example.com", "Test_1234!")
	require.NoError(t, err)

	return u
}

func TestCreateUser(t *testing.T) {
	s, db, mb, cleanup := setupTestEnvironment(t)

	testCases := []struct {
		name        string
		username    string
		email       string
		password    string
		setup       func(t *testing.T)
		expectedErr error
	}{
		{
			name:     "valid user",
			username: "testuser",
			email:    "testuser@example.com",
			password: "Test_1234!",
		},
		{
			name:        "empty username",
			email:       "testuser@example.com",
			password:    "Test_1234!",
			expectedErr: common.ValidationError{Errors: map[string]string{"username": "must be provided"}},
		},
		{
			name:     "duplicate username",
			username: "testuser",
			email:    "other@example.com",
			password: "Test_1234!",
			setup: func(t *testing.T) {
				createTestUser(t, s, "testuser")
			},
			expectedErr: ErrDuplicateUsername,
		},
		{
			name:     "duplicate email",
			username: "otheruser",
			email:    "testuser@example.com",
			password: "Test_1234!",
			setup: func(t *testing.T) {
				createTestUser(t, s, "testuser")
			},
			expectedErr: ErrDuplicateEmail,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.setup != nil {
				tc.setup(t)
			}

			u, err := s.CreateUser(context.Background(), tc.username, tc.email, tc.password)
			if tc.expectedErr != nil {
				assert.Nil(t, u)
				assert.Equal(t, tc.expectedErr, err)
			} else {
				require.NoError(t, err)
				assert.NotZero(t, u.ID)

				var count int
				err := db.QueryRow("SELECT COUNT(*) FROM users WHERE username = $1", tc.username).Scan(&count)
				assert.NoError(t, err)
				assert.Equal(t, 1, count)
			}

			t.Cleanup(func() {
				assert.NoError(t, cleanup())
			})
		})
	}

	mb.AssertCalled(t, "Publish", mock.Anything, mock.MatchedBy(func(msg []byte) bool {
		var event UserCreatedEvent
		return json.Unmarshal(msg, &event) == nil && event.Username == "testuser"
	}), common.UserCreatedKey, common.UserExchange)
}

func TestCreateUser_PublishError(t *testing.T) {
	db := common.TestDB("file://../../migrations", t)

	mb := new(MockMessageProducer)
	mb.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	s := NewUserService(db, mb, nil)

	_, err := s.CreateUser(context.Background(), "testuser", "testuser@example.com", "Test_1234!")
	assert.EqualError(t, err, "broker down")

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 0, count)

	// the name stays free for a retry once the broker is back
	retry := new(MockMessageProducer)
	retry.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	u, err := NewUserService(db, retry, nil).CreateUser(context.Background(), "testuser", "testuser@example.com", "Test_1234!")
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
}

func TestLoginAndLogoutUser(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	u := createTestUser(t, s, "testuser")
	ctx := context.Background()

	_, err := s.LoginUser(ctx, "testuser", "Wrong_1234!")
	assert.Equal(t, ErrAuthenticationFailure, err)

	_, err = s.LoginUser(ctx, "nobody", "Test_1234!")
	assert.Equal(t, ErrAuthenticationFailure, err)

	token, err := s.LoginUser(ctx, "testuser", "Test_1234!")
	require.NoError(t, err)
	assert.Len(t, token.Plain, 26)
	assert.True(t, token.Expiry.After(time.Now()))

	got, err := s.GetUserByAccessToken(ctx, token.Plain)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, s.LogoutUser(ctx, u.ID))

	_, err = s.GetUserByAccessToken(ctx, token.Plain)
	assert.Equal(t, common.ErrRecordNotFound, err)
}

func TestGetUser(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	owner := createTestUser(t, s, "owner")
	other := createTestUser(t, s, "other")

	testCases := []struct {
		name        string
		id          int
		callerID    int
		expected    *Profile
		expectedErr error
	}{
		{
			name:     "own profile",
			id:       owner.ID,
			callerID: owner.ID,
			expected: &Profile{ID: owner.ID, Username: "owner"},
		},
		{
			name:        "someone else's profile",
			id:          owner.ID,
			callerID:    other.ID,
			expectedErr: common.ErrUnauthorized,
		},
		{
			name:        "missing user",
			id:          owner.ID + other.ID + 100,
			callerID:    owner.ID,
			expectedErr: common.ErrRecordNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := s.GetUser(context.Background(), tc.id, tc.callerID)
			assert.Equal(t, tc.expectedErr, err)
			assert.Equal(t, tc.expected, p)
		})
	}
}

func TestFindUserByAttribute_RejectsUnknownAttribute(t *testing.T) {
	s, _, _, _ := setupTestEnvironment(t)

	_, err := s.FindUserByAttribute(context.Background(), Attribute("password"), "x")
	assert.Error(t, err)
}

func TestUpdateUser(t *testing.T) {
	s, _, _, cleanup := setupTestEnvironment(t)
	t.Cleanup(func() {
		assert.NoError(t, cleanup())
	})

	owner := createTestUser(t, s, "owner")
	other := createTestUser(t, s, "other")
	ctx := context.Background()

	t.Run("empty body", func(t *testing.T) {
		_, err := s.UpdateUser(ctx, owner.ID, owner.ID, &UpdateUserRequest{})
		assert.Equal(t, common.ValidationError{Errors: map[string]string{"body": "must contain at least one of: username, email"}}, err)
	})

	t.Run("someone else", func(t *testing.T) {
		updated, err := s.UpdateUser(ctx, owner.ID, other.ID, &UpdateUserRequest{Username: strptr("hijacked")})
		assert.Equal(t, common.ErrUnauthorized, err)
		assert.False(t, updated)

		u, err := s.FindUserByAttribute(ctx, AttributeID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "owner", u.Username)
	})

	t.Run("taken username", func(t *testing.T) {
		_, err := s.UpdateUser(ctx, owner.ID, owner.ID, &UpdateUserRequest{Username: strptr("other")})

		var statusErr *common.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusConflict, statusErr.Status)
		assert.ErrorIs(t, err, ErrDuplicateUsername)
	})

	t.Run("own profile", func(t *testing.T) {
		updated, err := s.UpdateUser(ctx, owner.ID, owner.ID, &UpdateUserRequest{Username: strptr("renamed")})
		require.NoError(t, err)
		assert.True(t, updated)

		u, err := s.FindUserByAttribute(ctx, AttributeID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", u.Username)
		assert.Equal(t, "owner@example.com", u.Email)
	})

	t.Run("identical values", func(t *testing.T) {
		updated, err := s.UpdateUser(ctx, owner.ID, owner.ID, &UpdateUserRequest{Username: strptr("renamed")})
		require.NoError(t, err)
		assert.False(t, updated)
	})
	t.Run("email case change", func(t *testing.T) {
		updated, err := s.UpdateUser(ctx, owner.ID, owner.ID, &UpdateUserRequest{Email: strptr("Owner@Example.com")})
		require.NoError(t, err)
		assert.True(t, updated)

		u, err := s.FindUserByAttribute(ctx, AttributeID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Owner@Example.com", u.Email)

		updated, err = s.UpdateUser(ctx, owner.ID, owner.ID, &UpdateUserRequest{Email: strptr("Owner@Example.com")})
		require.NoError(t, err)
		assert.False(t, updated)
	})
}
