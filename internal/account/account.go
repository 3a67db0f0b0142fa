// Package account registers users and edits their profiles.
package account

import (
	"context"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"pizzastore/internal/apperr"
	"pizzastore/internal/auth"
	"pizzastore/models"
	"pizzastore/repository"
)

// Service manages user accounts.
type Service struct {
	Users         repository.UserRepositoryI
	HashPasswords bool
	Log           logrus.FieldLogger
}

// Register creates a customer account. The login must be unused.
func (s *Service) Register(ctx context.Context, login, password, phone string) error {
	if err := checkLen("login", login, models.MaxLoginLen); err != nil {
		return err
	}
	if err := checkLen("password", password, models.MaxPasswordLen); err != nil {
		return err
	}
	if err := checkLen("phone number", phone, models.MaxPhoneLen); err != nil {
		return err
	}
	taken, err := s.Users.Exists(ctx, login)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Validation("register", "Login %s already exists!", login)
	}
	stored, err := s.storedPassword(password)
	if err != nil {
		return err
	}
	if err := s.Users.Create(ctx, models.User{
		Login:    login,
		Password: stored,
		Role:     models.RoleCustomer,
		PhoneNum: phone,
	}); err != nil {
		return err
	}
	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{"op": "register", "login": login}).Info("user created")
	}
	return nil
}

// ViewProfile prints login, favorite items and phone number.
func (s *Service) ViewProfile(ctx context.Context, w io.Writer, login string) error {
	n, err := s.Users.PrintProfile(ctx, w, login)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("view profile", "%s does not exist!", login)
	}
	return nil
}

// UpdatePassword replaces the caller's password.
func (s *Service) UpdatePassword(ctx context.Context, login, password string) error {
	if err := checkLen("password", password, models.MaxPasswordLen); err != nil {
		return err
	}
	stored, err := s.storedPassword(password)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, login, stored)
}

// UpdatePhone replaces the caller's phone number.
func (s *Service) UpdatePhone(ctx context.Context, login, phone string) error {
	if err := checkLen("phone number", phone, models.MaxPhoneLen); err != nil {
		return err
	}
	return s.Users.UpdatePhone(ctx, login, phone)
}

// UpdateFavorites replaces the caller's favorite items text.
func (s *Service) UpdateFavorites(ctx context.Context, login, favorites string) error {
	if strings.TrimSpace(favorites) == "" {
		return apperr.Validation("update favorites", "favorite items are empty")
	}
	return s.Users.UpdateFavorites(ctx, login, favorites)
}

func (s *Service) storedPassword(password string) (string, error) {
	if !s.HashPasswords {
		return password, nil
	}
	h, err := auth.HashPassword(password)
	if err != nil {
		return "", apperr.Backend("hash password", "", err)
	}
	return h, nil
}

func checkLen(field, v string, limit int) error {
	n := utf8.RuneCountInString(v)
	if n == 0 {
		return apperr.Validation("check "+field, "Your %s cannot be empty", field)
	}
	if n > limit {
		return apperr.Validation("check "+field, "Your %s must be at most %d characters", field, limit)
	}
	return nil
}
