package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momo-data/momo-indexer/config"
	"github.com/momo-data/momo-indexer/db/models"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

var (
	ErrDuplicateUser = errors.New("username or email already exists")
	ErrEmptyPatch    = errors.New("nothing to update")

	// returned inside a transaction to roll it back when no row matched
	errNoRowsAffected = errors.New("no rows affected")
)

// UserPatch holds the user fields to change. Nil fields are left untouched.
type UserPatch struct {
	Username *string
	Password *string
	Email    *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Password == nil && p.Email == nil
}

// Columns maps the set fields to their column names. Only the fixed user columns can appear,
// so the resulting UPDATE is fully parameterized.
func (p UserPatch) Columns() map[string]interface{} {
	columns := make(map[string]interface{})
	if p.Username != nil {
		columns["username"] = *p.Username
	}
	if p.Password != nil {
		columns["password"] = *p.Password
	}
	if p.Email != nil {
		columns["email"] = *p.Email
	}
	return columns
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CreateUser inserts a user and returns its ID.
func CreateUser(ctx context.Context, db *gorm.DB, username string, password string, email *string) (uint, error) {
	user := models.User{Username: username, Password: password, Email: email}

	err := db.WithContext(ctx).Transaction(func(dbTransaction *gorm.DB) error {
		return dbTransaction.Create(&user).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("%w: %w", ErrDuplicateUser, err)
		}
		config.Log.Error("Error creating user.", err)
		return 0, err
	}

	return user.ID, nil
}

// GetUserByID returns nil without an error when no user has that ID.
func GetUserByID(ctx context.Context, db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).Omit("password").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		config.Log.Error("Error retrieving user.", err)
		return nil, err
	}

	return &user, nil
}

func GetAllUsers(ctx context.Context, db *gorm.DB) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := db.WithContext(ctx).Omit("password").Order("id asc").Find(&users).Error; err != nil {
		config.Log.Error("Error retrieving users.", err)
		return nil, err
	}

	return users, nil
}

// UpdateUser applies the patch and reports whether a user was changed. An empty patch is an
// error, a missing user is not.
func UpdateUser(ctx context.Context, db *gorm.DB, id uint, patch UserPatch) (bool, error) {
	if patch.IsEmpty() {
		return false, ErrEmptyPatch
	}

	err := db.WithContext(ctx).Transaction(func(dbTransaction *gorm.DB) error {
		result := dbTransaction.Model(&models.User{}).Where("id = ?", id).Updates(patch.Columns())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNoRowsAffected
		}
		return nil
	})

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errNoRowsAffected):
		return false, nil
	case isUniqueViolation(err):
		err = fmt.Errorf("%w: %w", ErrDuplicateUser, err)
	}

	config.Log.Error("Error updating user.", err)
	return false, err
}

// DeleteUser reports whether a user was deleted.
func DeleteUser(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	err := db.WithContext(ctx).Transaction(func(dbTransaction *gorm.DB) error {
		result := dbTransaction.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errNoRowsAffected
		}
		return nil
	})

	if err == nil {
		return true, nil
	}
	if errors.Is(err, errNoRowsAffected) {
		return false, nil
	}

	config.Log.Error("Error deleting user.", err)
	return false, err
}
