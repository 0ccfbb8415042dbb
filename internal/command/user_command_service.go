package command

import (
	"context"
	"fmt"

	"github.com/eaglebank/mts/internal/repository"
	"github.com/eaglebank/mts/shared/cqrs"
	"github.com/eaglebank/mts/shared/events"
	"github.com/eaglebank/mts/shared/models"
	"github.com/eaglebank/mts/shared/utils"
	"github.com/sirupsen/logrus"
)

// UserCommandService writes user state to the SQL store and keeps the Redis
// read model up to date.
type UserCommandService struct {
	writeRepo *repository.UserWriteRepository
	readRepo  *repository.UserReadRepository
	publisher events.Emitter
}

func NewUserCommandService(
	writeRepo *repository.UserWriteRepository,
	readRepo *repository.UserReadRepository,
	publisher events.Emitter,
) *UserCommandService {
	return &UserCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		publisher: publisher,
	}
}

func (s *UserCommandService) CreateUser(ctx context.Context, cmd cqrs.CreateUserCommand) (*models.User, error) {
	passwordHash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &models.User{
		Username:     cmd.Username,
		Password:     passwordHash,
		EmailAddress: cmd.EmailAddress,
		PhoneNumber:  cmd.PhoneNumber,
	}
	if err := s.writeRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.readRepo.CacheUser(ctx, user)
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserCreated, events.UserCreatedEvent{
		UserID:       user.UserID,
		Username:     user.Username,
		EmailAddress: user.EmailAddress,
	}); err != nil {
		logrus.WithError(err).WithField("user_id", user.UserID).Warn("Failed to publish user.created event")
	}
	return user, nil
}

// UpdateUser overwrites the stored details. It returns repository.ErrNotFound
// when the user does not exist.
func (s *UserCommandService) UpdateUser(ctx context.Context, cmd cqrs.UpdateUserCommand) (*models.User, error) {
	user, err := s.writeRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	user.Username = cmd.Username
	user.EmailAddress = cmd.EmailAddress
	user.PhoneNumber = cmd.PhoneNumber
	if cmd.Password != "" {
		if user.Password, err = utils.HashPassword(cmd.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
	}
	if err := s.writeRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.readRepo.CacheUser(ctx, user)
	if err := s.publisher.Publish(ctx, events.UserEventsStream, events.UserUpdated, events.UserUpdatedEvent{
		UserID:       user.UserID,
		Username:     user.Username,
		EmailAddress: user.EmailAddress,
	}); err != nil {
		logrus.WithError(err).WithField("user_id", user.UserID).Warn("Failed to publish user.updated event")
	}
	return user, nil
}
