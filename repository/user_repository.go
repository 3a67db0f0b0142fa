package repository

import (
	"context"
	"io"
	"strings"

	"pizzastore/internal/apperr"
	"pizzastore/models"
)

type UserRepository struct {
	exec *Executor
}

func NewUserRepository(exec *Executor) *UserRepository {
	return &UserRepository{exec: exec}
}

// Create inserts a new user. FavoriteItems may be nil.
func (r *UserRepository) Create(ctx context.Context, u models.User) error {
	_, err := r.exec.ExecuteWrite(ctx,
		`INSERT INTO Users (login, password, role, favoriteItems, phoneNum) VALUES (?, ?, ?, ?, ?)`,
		u.Login, u.Password, string(u.Role), u.FavoriteItems, u.PhoneNum)
	return err
}

// GetByLogin returns the user or nil when the login does not exist.
func (r *UserRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	res, err := r.exec.ExecuteRead(ctx,
		`SELECT login, password, role, favoriteItems, phoneNum FROM Users WHERE login = ?`, login)
	if err != nil {
		return nil, err
	}
	if res.Len() == 0 {
		return nil, nil
	}
	row := res.Rows[0]
	u := &models.User{
		Login:    strings.TrimSpace(row[0].String),
		Password: row[1].String,
		Role:     models.Role(strings.TrimSpace(row[2].String)),
		PhoneNum: strings.TrimSpace(row[4].String),
	}
	if row[3].Valid {
		fav := row[3].String
		u.FavoriteItems = &fav
	}
	return u, nil
}

// Exists reports whether the login is taken.
func (r *UserRepository) Exists(ctx context.Context, login string) (bool, error) {
	n, err := r.exec.ExecuteReadCount(ctx, `SELECT login FROM Users WHERE login = ?`, login)
	return n > 0, err
}

// RoleOf reads the stored role for login.
func (r *UserRepository) RoleOf(ctx context.Context, login string) (models.Role, error) {
	res, err := r.exec.ExecuteRead(ctx, `SELECT role FROM Users WHERE login = ?`, login)
	if err != nil {
		return "", err
	}
	v, ok := res.First()
	if !ok {
		return "", apperr.NotFound("role of", "%s does not exist!", login)
	}
	role, ok := models.ParseRole(v)
	if !ok {
		return "", apperr.Backend("role of", "unknown role "+v, nil)
	}
	return role, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, login, password string) error {
	return r.update(ctx, `UPDATE Users SET password = ? WHERE login = ?`, password, login)
}

func (r *UserRepository) UpdatePhone(ctx context.Context, login, phone string) error {
	return r.update(ctx, `UPDATE Users SET phoneNum = ? WHERE login = ?`, phone, login)
}

func (r *UserRepository) UpdateFavorites(ctx context.Context, login, favorites string) error {
	return r.update(ctx, `UPDATE Users SET favoriteItems = ? WHERE login = ?`, favorites, login)
}

// UpdateRole sets the role for the given login.
// Intended for administrative flows and tests.
func (r *UserRepository) UpdateRole(ctx context.Context, login string, role models.Role) error {
	return r.update(ctx, `UPDATE Users SET role = ? WHERE login = ?`, string(role), login)
}

func (r *UserRepository) update(ctx context.Context, stmt, value, login string) error {
	n, err := r.exec.ExecuteWrite(ctx, stmt, value, login)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound("update user", "%s does not exist!", login)
	}
	return nil
}

// PrintProfile renders the user's profile. The password is not shown.
func (r *UserRepository) PrintProfile(ctx context.Context, w io.Writer, login string) (int, error) {
	return r.exec.ExecuteReadAndPrint(ctx, w,
		`SELECT login AS "Login", favoriteItems AS "Favorite Items", phoneNum AS "Phone Number" FROM Users WHERE login = ?`, login)
}
