// Package repositories is the persistence gateway: one repository per entity,
// one method per operation. Every operation is single-row; there are no
// cross-entity transactions anywhere in this layer.
package repositories

import (
	"github.com/careerloft/careerloft/app/models"
	"github.com/careerloft/careerloft/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(id uint) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("id = ?", id).First(&user)
	return user, err
}

// FindByUsername looks up a user by their login name.
func (r *UserRepository) FindByUsername(username string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("username = ?", username).First(&user)
	return user, err
}

// FindByEmail looks up a user by email address.
func (r *UserRepository) FindByEmail(email string) (models.User, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	return user, err
}

// UsernameTaken reports whether any account already uses username.
func (r *UserRepository) UsernameTaken(username string) (bool, error) {
	var n int64
	err := orm.DB().Model(&models.User{}).Where("username = ?", username).Count(&n)
	return n > 0, err
}

// EmailTaken reports whether any account already uses email.
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var n int64
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).Count(&n)
	return n > 0, err
}

// Create persists a new user record.
func (r *UserRepository) Create(user *models.User) error {
	return orm.DB().Create(user)
}

// Update persists changes to an existing user.
func (r *UserRepository) Update(user *models.User) error {
	return orm.DB().Save(user)
}

// All returns all users with pagination.
func (r *UserRepository) All(page, limit int) ([]models.User, orm.Pagination, error) {
	var users []models.User
	pagination, err := orm.DB().Model(&models.User{}).GetWithPagination(&users, page, limit)
	return users, pagination, err
}

// ByRole returns every user holding the given role.
func (r *UserRepository) ByRole(role models.Role) ([]models.User, error) {
	var users []models.User
	err := orm.DB().Model(&models.User{}).Where("role = ?", role).Order("id").Get(&users)
	return users, err
}
