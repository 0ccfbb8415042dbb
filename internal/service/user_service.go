// Package service implements the user capability consumed by the HTTP layer
// on top of the CQRS packages:
//   - internal/command: UserCommandService (writes)
//   - internal/query:   UserQueryService (reads from the Redis read model)
//
// Every operation signals absence on one of two channels: a nil result with a
// nil error when the request itself is rejected, or ErrUserNotFound when a
// well-formed lookup finds no user.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eaglebank/mts/internal/repository"
	"github.com/eaglebank/mts/shared/cqrs"
	"github.com/eaglebank/mts/shared/models"
	"github.com/eaglebank/mts/shared/utils"
	"github.com/eaglebank/mts/shared/validation"
	"github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

// UserCommander defines the write-side operations used by UserService.
type UserCommander interface {
	CreateUser(context.Context, cqrs.CreateUserCommand) (*models.User, error)
	UpdateUser(context.Context, cqrs.UpdateUserCommand) (*models.User, error)
}

// UserQuerier defines the read-side operations used by UserService.
type UserQuerier interface {
	GetUser(context.Context, cqrs.GetUserQuery) (*models.User, error)
	ListUsers(context.Context, cqrs.ListUsersQuery) ([]models.User, error)
	FindUserByEmail(context.Context, cqrs.FindUserByEmailQuery) (*models.User, error)
}

// UserService routes each operation to the command or query side.
type UserService struct {
	commands UserCommander
	queries  UserQuerier
}

func NewUserService(commands UserCommander, queries UserQuerier) *UserService {
	return &UserService{commands: commands, queries: queries}
}

// SaveUser rejects invalid users and duplicate email addresses.
func (s *UserService) SaveUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, nil
	}
	user.EmailAddress = utils.NormalizeEmail(user.EmailAddress)
	if errs := validation.Struct(user); errs != nil {
		logrus.WithField("fields", validation.Fields(errs)).Info("Rejected invalid user")
		return nil, nil
	}

	created, err := s.commands.CreateUser(ctx, cqrs.CreateUserCommand{
		Username:     user.Username,
		Password:     user.Password,
		EmailAddress: user.EmailAddress,
		PhoneNumber:  user.PhoneNumber,
	})
	if errors.Is(err, repository.ErrDuplicateEmail) {
		logrus.WithField("email", user.EmailAddress).Info("Rejected user with duplicate email")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, nil
	}
	user, err := s.queries.GetUser(ctx, cqrs.GetUserQuery{UserID: id})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("user %d: %w", id, ErrUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUsers returns a non-nil slice whenever the store answers.
func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.queries.ListUsers(ctx, cqrs.ListUsersQuery{})
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// UpdateUser requires the id of an existing user. An empty password keeps
// the stored credential.
func (s *UserService) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil || user.UserID <= 0 {
		return nil, nil
	}
	user.EmailAddress = utils.NormalizeEmail(user.EmailAddress)
	if errs := validation.StructExcept(user, "Password"); errs != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": user.UserID,
			"fields":  validation.Fields(errs),
		}).Info("Rejected invalid user update")
		return nil, nil
	}

	updated, err := s.commands.UpdateUser(ctx, cqrs.UpdateUserCommand{
		UserID:       user.UserID,
		Username:     user.Username,
		Password:     user.Password,
		EmailAddress: user.EmailAddress,
		PhoneNumber:  user.PhoneNumber,
	})
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("user %d: %w", user.UserID, ErrUserNotFound)
	case errors.Is(err, repository.ErrDuplicateEmail):
		logrus.WithField("user_id", user.UserID).Info("Rejected update to an email already in use")
		return nil, nil
	case err != nil:
		return nil, err
	}
	return updated, nil
}

func (s *UserService) FindByEmailAddress(ctx context.Context, email string) (*models.UserDTO, error) {
	email = utils.NormalizeEmail(email)
	if !validation.Email(email) {
		return nil, nil
	}
	user, err := s.queries.FindUserByEmail(ctx, cqrs.FindUserByEmailQuery{EmailAddress: email})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", email, ErrUserNotFound)
	}
	if err != nil {
		return nil, err
	}
	return models.NewUserDTO(user), nil
}
