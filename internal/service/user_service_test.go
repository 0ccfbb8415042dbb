package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/eaglebank/mts/internal/repository"
	"github.com/eaglebank/mts/shared/cqrs"
	"github.com/eaglebank/mts/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- mock implementations ----

type mockCommander struct {
	createFn func(cqrs.CreateUserCommand) (*models.User, error)
	updateFn func(cqrs.UpdateUserCommand) (*models.User, error)
}

func (m *mockCommander) CreateUser(_ context.Context, cmd cqrs.CreateUserCommand) (*models.User, error) {
	if m.createFn != nil {
		return m.createFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockCommander) UpdateUser(_ context.Context, cmd cqrs.UpdateUserCommand) (*models.User, error) {
	if m.updateFn != nil {
		return m.updateFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockQuerier struct {
	getFn   func(cqrs.GetUserQuery) (*models.User, error)
	listFn  func() ([]models.User, error)
	emailFn func(cqrs.FindUserByEmailQuery) (*models.User, error)
}

func (m *mockQuerier) GetUser(_ context.Context, q cqrs.GetUserQuery) (*models.User, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockQuerier) ListUsers(context.Context, cqrs.ListUsersQuery) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn()
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockQuerier) FindUserByEmail(_ context.Context, q cqrs.FindUserByEmailQuery) (*models.User, error) {
	if m.emailFn != nil {
		return m.emailFn(q)
	}
	return nil, fmt.Errorf("not configured")
}

// ---- test data ----

var sTestUser = &models.User{
	UserID: 1, Username: "alice", Password: "$2a$10$hash",
	EmailAddress: "alice@example.com", PhoneNumber: "+441234567890",
}

func validUser() *models.User {
	return &models.User{Username: "alice", Password: "securepass123", EmailAddress: " alice@example.com ", PhoneNumber: "+441234567890"}
}

// ---- tests ----

func TestSaveUser(t *testing.T) {
	errDB := errors.New("connection refused")
	tests := []struct {
		name     string
		user     *models.User
		createFn func(cqrs.CreateUserCommand) (*models.User, error)
		wantUser bool
		wantErr  error
	}{
		{
			name: "success - returns created user",
			user: validUser(),
			createFn: func(cmd cqrs.CreateUserCommand) (*models.User, error) {
				if cmd.EmailAddress != "alice@example.com" {
					return nil, fmt.Errorf("email not normalised: %q", cmd.EmailAddress)
				}
				return sTestUser, nil
			},
			wantUser: true,
		},
		{name: "rejected - nil user", user: nil},
		{name: "rejected - missing fields", user: &models.User{Username: "alice"}},
		{name: "rejected - malformed email", user: &models.User{Username: "a", Password: "p", EmailAddress: "nope"}},
		{
			name:     "rejected - duplicate email",
			user:     validUser(),
			createFn: func(cqrs.CreateUserCommand) (*models.User, error) { return nil, repository.ErrDuplicateEmail },
		},
		{
			name:     "failure - store error passes through",
			user:     validUser(),
			createFn: func(cqrs.CreateUserCommand) (*models.User, error) { return nil, errDB },
			wantErr:  errDB,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockCommander{createFn: tt.createFn}, &mockQuerier{})
			got, err := svc.SaveUser(context.Background(), tt.user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, got != nil)
		})
	}
}

func TestGetUserByID(t *testing.T) {
	tests := []struct {
		name         string
		id           int64
		getFn        func(cqrs.GetUserQuery) (*models.User, error)
		wantUser     bool
		wantNotFound bool
	}{
		{
			name:     "success",
			id:       1,
			getFn:    func(cqrs.GetUserQuery) (*models.User, error) { return sTestUser, nil },
			wantUser: true,
		},
		{name: "rejected - zero id", id: 0},
		{name: "rejected - negative id", id: -5},
		{
			name:         "not found",
			id:           99,
			getFn:        func(cqrs.GetUserQuery) (*models.User, error) { return nil, repository.ErrNotFound },
			wantNotFound: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockCommander{}, &mockQuerier{getFn: tt.getFn})
			got, err := svc.GetUserByID(context.Background(), tt.id)
			if tt.wantNotFound {
				assert.ErrorIs(t, err, ErrUserNotFound)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, got != nil)
		})
	}
}

func TestGetUsers(t *testing.T) {
	t.Run("nil list from store becomes empty", func(t *testing.T) {
		svc := NewUserService(&mockCommander{}, &mockQuerier{listFn: func() ([]models.User, error) { return nil, nil }})
		users, err := svc.GetUsers(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})
	t.Run("store error", func(t *testing.T) {
		svc := NewUserService(&mockCommander{}, &mockQuerier{listFn: func() ([]models.User, error) { return nil, errors.New("boom") }})
		users, err := svc.GetUsers(context.Background())
		assert.Error(t, err)
		assert.Nil(t, users)
	})
	t.Run("returns users", func(t *testing.T) {
		svc := NewUserService(&mockCommander{}, &mockQuerier{listFn: func() ([]models.User, error) { return []models.User{*sTestUser}, nil }})
		users, err := svc.GetUsers(context.Background())
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestUpdateUser(t *testing.T) {
	withID := func(u *models.User, id int64) *models.User { u.UserID = id; return u }
	tests := []struct {
		name         string
		user         *models.User
		updateFn     func(cqrs.UpdateUserCommand) (*models.User, error)
		wantUser     bool
		wantNotFound bool
	}{
		{
			name:     "success",
			user:     withID(validUser(), 1),
			updateFn: func(cqrs.UpdateUserCommand) (*models.User, error) { return sTestUser, nil },
			wantUser: true,
		},
		{
			name: "success - empty password keeps stored credential",
			user: withID(&models.User{Username: "alice", EmailAddress: "alice@example.com"}, 1),
			updateFn: func(cmd cqrs.UpdateUserCommand) (*models.User, error) {
				if cmd.Password != "" {
					return nil, fmt.Errorf("unexpected password")
				}
				return sTestUser, nil
			},
			wantUser: true,
		},
		{name: "rejected - nil user", user: nil},
		{name: "rejected - missing id", user: validUser()},
		{name: "rejected - invalid email", user: withID(&models.User{Username: "a", EmailAddress: "bad"}, 1)},
		{
			name:     "rejected - email taken",
			user:     withID(validUser(), 1),
			updateFn: func(cqrs.UpdateUserCommand) (*models.User, error) { return nil, repository.ErrDuplicateEmail },
		},
		{
			name:         "not found",
			user:         withID(validUser(), 42),
			updateFn:     func(cqrs.UpdateUserCommand) (*models.User, error) { return nil, repository.ErrNotFound },
			wantNotFound: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockCommander{updateFn: tt.updateFn}, &mockQuerier{})
			got, err := svc.UpdateUser(context.Background(), tt.user)
			if tt.wantNotFound {
				assert.ErrorIs(t, err, ErrUserNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, got != nil)
		})
	}
}

func TestFindByEmailAddress(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		emailFn      func(cqrs.FindUserByEmailQuery) (*models.User, error)
		wantDTO      *models.UserDTO
		wantNotFound bool
	}{
		{
			name:    "success - returns projection",
			email:   "alice@example.com",
			emailFn: func(cqrs.FindUserByEmailQuery) (*models.User, error) { return sTestUser, nil },
			wantDTO: models.NewUserDTO(sTestUser),
		},
		{name: "rejected - blank email", email: "  "},
		{name: "rejected - malformed email", email: "alice"},
		{
			name:         "not found",
			email:        "nobody@example.com",
			emailFn:      func(cqrs.FindUserByEmailQuery) (*models.User, error) { return nil, repository.ErrNotFound },
			wantNotFound: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewUserService(&mockCommander{}, &mockQuerier{emailFn: tt.emailFn})
			got, err := svc.FindByEmailAddress(context.Background(), tt.email)
			if tt.wantNotFound {
				assert.ErrorIs(t, err, ErrUserNotFound)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDTO, got)
		})
	}
}
