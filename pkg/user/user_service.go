package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/69GliTcH/SimpliFin/internal/event_bus"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateUser(ctx context.Context, user User) (User, error)
	DeleteUser(ctx context.Context, id int) error
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	// EnsureGoogleUser finds the user linked to the given Google subject,
	// creating one from the profile data on first sign-in.
	EnsureGoogleUser(ctx context.Context, subject, email, displayName, photoUrl string) (User, error)
}

type UserServiceImpl struct {
	repo Repo
	bus  *event_bus.EventBus
}

func NewUserService(repo Repo, bus *event_bus.EventBus) *UserServiceImpl {
	return &UserServiceImpl{repo: repo, bus: bus}
}

func (u *UserServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.GetUser(ctx, userId)
}

func (u *UserServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	if user.Username == "" || user.DisplayName == "" {
		return User{}, ErrUserDataInvalid
	}
	if user.Uid == "" {
		user.Uid = uuid.NewString()
	}
	if user.Settings.Currency == "" {
		user.Settings.Currency = "₹"
	}
	userId, err := u.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, err
	}
	user.Id = userId
	return user, nil
}

func (u *UserServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return u.repo.GetUser(ctx, id)
}

func (u *UserServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return u.repo.GetUserByUid(ctx, uid)
}

func (u *UserServiceImpl) UpdateUser(ctx context.Context, user User) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return u.repo.UpdateUser(ctx, userId, user)
}

// DeleteUser removes the user and notifies subscribers so open record
// streams can drop their state.
func (u *UserServiceImpl) DeleteUser(ctx context.Context, id int) error {
	deleted, err := u.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := u.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	event := event_bus.NewEvent(ctx, event_bus.UserDeletedEvent, event_bus.UserDeleted{
		UserId: deleted.Id,
		Uid:    deleted.Uid,
	})
	if err := u.bus.Publish(event); err != nil {
		log.Errorf("failed to publish user deletion for user %d: %v", id, err)
	}
	return nil
}

func (u *UserServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return u.repo.GetAllUsers(ctx)
}

func (u *UserServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	return u.repo.IsUsernameAvailable(ctx, username)
}

func (u *UserServiceImpl) EnsureGoogleUser(ctx context.Context, subject, email, displayName, photoUrl string) (User, error) {
	existing, err := u.repo.GetUserByGoogleSubject(ctx, subject)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	log.Infof("first Google sign-in for %s, creating user", email)
	return u.CreateUser(ctx, User{
		Username:      email,
		DisplayName:   displayName,
		PhotoUrl:      photoUrl,
		GoogleSubject: subject,
	})
}
