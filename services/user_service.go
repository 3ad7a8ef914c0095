package services

import (
	"errors"
	"log"

	"challenge-hub-system/models"
	"challenge-hub-system/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// CreateUser registers a new talent account with a bcrypt-hashed password.
func (s *UserService) CreateUser(name, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.NewStoreError("failed to hash password", err)
	}
	user := &models.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleTalent,
	}
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflict("User already exists")
		}
		log.Printf("[User] create failed for %s: %v", email, err)
		return nil, utils.NewStoreError("failed to create user", err)
	}
	return user, nil
}

func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("User not found")
		}
		log.Printf("[User] lookup by email failed: %v", err)
		return nil, utils.NewStoreError("failed to fetch user", err)
	}
	return &user, nil
}

func (s *UserService) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFound("User not found")
		}
		log.Printf("[User] lookup %s failed: %v", id, err)
		return nil, utils.NewStoreError("failed to fetch user", err)
	}
	return &user, nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func (s *UserService) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}

// UpdateProfile changes name and/or email for the given user.
func (s *UserService) UpdateProfile(id string, name, email *string) (*models.User, error) {
	user, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if name != nil && *name != "" {
		user.Name = *name
	}
	if email != nil && *email != "" {
		user.Email = *email
	}
	if err := s.DB.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflict("email already in use")
		}
		log.Printf("[User] update %s failed: %v", id, err)
		return nil, utils.NewStoreError("failed to update user", err)
	}
	return user, nil
}
