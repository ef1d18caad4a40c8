// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Dmitry Kotelnikov

package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/internal/store"
	"github.com/dkotelnikov/user-service/internal/validators"
	"github.com/dkotelnikov/user-service/models"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

type userService struct {
	userRepository store.UserRepository
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		validator:      validators.NewUserValidator(),
		logger:         logger,
	}
}

func (s *userService) ListUsers(ctx context.Context, req models.ListUsersRequest) ([]models.User, models.Pagination, error) {
	log := logger.FromContext(ctx)

	if req.Page < 1 {
		req.Page = defaultPage
	}
	if req.PerPage < 1 {
		req.PerPage = defaultPerPage
	}

	users, total, err := s.userRepository.ListUsers(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("func", "ListUsers").Msg("error during listing users")
		return nil, models.Pagination{}, err
	}

	pagination := models.Pagination{
		Page:    req.Page,
		PerPage: req.PerPage,
		Total:   total,
		Pages:   int(math.Ceil(float64(total) / float64(req.PerPage))),
	}

	return users, pagination, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (models.User, error) {
	if id == "" {
		return models.User{}, ErrValidationNoUserIDProvided
	}

	return s.userRepository.GetUserByID(ctx, id)
}

func (s *userService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	if err := s.checkUniqueness(ctx, user.Username, user.Email, ""); err != nil {
		return models.User{}, err
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Error().Err(err).Str("func", "CreateUser").Msg("error during user creation")
		return models.User{}, err
	}

	return created, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if id == "" {
		return models.User{}, ErrValidationNoUserIDProvided
	}

	// an empty update is valid: it only refreshes the record's updated_at
	if !update.IsEmpty() {
		if err := s.validator.Validate(ctx, update); err != nil {
			return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
		}
	}

	// the record must exist before any uniqueness pre-check so that an
	// unknown id yields 404, not 409
	if _, err := s.userRepository.GetUserByID(ctx, id); err != nil {
		return models.User{}, err
	}

	var username, email string
	if update.Username != nil {
		username = *update.Username
	}
	if update.Email != nil {
		email = *update.Email
	}
	if err := s.checkUniqueness(ctx, username, email, id); err != nil {
		return models.User{}, err
	}

	updated, err := s.userRepository.UpdateUser(ctx, id, update)
	if err != nil {
		log.Error().Err(err).Str("func", "UpdateUser").Msg("error during user update")
		return models.User{}, err
	}

	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	if id == "" {
		return ErrValidationNoUserIDProvided
	}

	return s.userRepository.DeleteUser(ctx, id)
}

func (s *userService) RestoreUser(ctx context.Context, id string) (models.User, error) {
	if id == "" {
		return models.User{}, ErrValidationNoUserIDProvided
	}

	return s.userRepository.RestoreUser(ctx, id)
}

// checkUniqueness reports a conflict sentinel when username or email is
// already taken by a record other than excludeID. Empty values are skipped.
// The unique indexes remain the backstop for concurrent writers.
func (s *userService) checkUniqueness(ctx context.Context, username, email, excludeID string) error {
	if username != "" {
		_, err := s.userRepository.FindUserByField(ctx, store.FieldUsername, username, excludeID)
		switch {
		case err == nil:
			return store.ErrUsernameAlreadyExists
		case !errors.Is(err, store.ErrUserNotFound):
			return err
		}
	}

	if email != "" {
		_, err := s.userRepository.FindUserByField(ctx, store.FieldEmail, email, excludeID)
		switch {
		case err == nil:
			return store.ErrEmailAlreadyExists
		case !errors.Is(err, store.ErrUserNotFound):
			return err
		}
	}

	return nil
}
