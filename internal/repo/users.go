package repo

import (
	"context"
	"errors"
	"strings"

	"ipmanager/internal/models"

	"gorm.io/gorm"
)

var ErrUserExists = errors.New("username already exists")

type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// GetByUsername: точное (регистрозависимое) совпадение; nil, nil если нет.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).Take(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create: заводит пользователя. Хэш пароля готовит вызывающий.
func (s *UserStore) Create(ctx context.Context, username, passwordHash string, isAdmin bool) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username required")
	}
	u := models.User{Username: username, PasswordHash: passwordHash, IsAdmin: isAdmin}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrUserExists
		}
		return tx.Create(&u).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List: все пользователи по id (для CLI).
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := s.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}
