package repository

import (
	"context"
	"errors"
	"fmt"

	"user-account-service/internal/models"

	"gorm.io/gorm"
)

// userColumns are the fields selected for list queries. The password
// hash is excluded here, at the query level, not stripped after fetch.
var userColumns = []string{"id", "username", "email", "create_time", "dni"}

type gormRepository struct {
	db *gorm.DB
}

// NewGormRepository wraps a gorm connection in the UserRepository seam.
func NewGormRepository(db *gorm.DB) UserRepository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

func (r *gormRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Preload("Roles.Permissions").
		Where("email = ?", email).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (r *gormRepository) FindPage(ctx context.Context, offset, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select(userColumns).
		Preload("Roles.Permissions").
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("find users page: %w", err)
	}
	return users, nil
}

func (r *gormRepository) FindAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Select(userColumns).
		Preload("Roles.Permissions").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("find all users: %w", err)
	}
	return users, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r *gormRepository) Create(ctx context.Context, u *models.User) error {
	res := r.db.WithContext(ctx).Omit("Roles").Create(u)
	if res.Error != nil {
		return fmt.Errorf("create user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("create user: no row inserted")
	}
	return nil
}

// UpdateWithRoles runs the scalar update and the delete-all/insert-each
// role replacement in one transaction, so a concurrent reader never
// observes the user with zero roles and a failed role insert rolls the
// whole update back.
func (r *gormRepository) UpdateWithRoles(ctx context.Context, u *models.User, roleIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ?", u.ID).
			Updates(map[string]interface{}{
				"username": u.Username,
				"email":    u.Email,
				"dni":      u.DNI,
			})
		if res.Error != nil {
			return fmt.Errorf("update user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("user_id = ?", u.ID).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("clear user roles: %w", err)
		}
		for _, roleID := range roleIDs {
			ur := models.UserRole{UserID: u.ID, RoleID: roleID}
			if err := tx.Create(&ur).Error; err != nil {
				return fmt.Errorf("assign role %d: %w", roleID, err)
			}
		}
		return nil
	})
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("clear user roles: %w", err)
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return fmt.Errorf("delete user: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *gormRepository) ListRoles(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Order("id").
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}
