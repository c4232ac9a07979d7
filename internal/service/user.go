package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/recipeshare/backend/internal/models"
	"github.com/recipeshare/backend/internal/storage"
)

// UserService covers account administration that is not exposed over HTTP
type UserService struct {
	db     *gorm.DB
	images storage.ImageStore
	log    *zap.Logger
}

func NewUserService(db *gorm.DB, images storage.ImageStore, log *zap.Logger) *UserService {
	return &UserService{db: db, images: images, log: log}
}

// GetUser retrieves a user by id
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user", ID: id}
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

// DeleteUser removes a user, every upvote they cast, and every recipe they
// authored along with the upvotes and ingredient links of those recipes.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	db := s.db.WithContext(ctx)

	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}

	var recipes []models.Recipe
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Find(&recipes).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Upvote{}).Error; err != nil {
			return err
		}
		if err := deleteRecipes(tx, recipes); err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	for _, r := range recipes {
		discardImage(ctx, s.images, s.log, r.Image)
	}
	s.log.Info("deleted user", zap.Uint("user_id", id), zap.Int("recipes", len(recipes)))
	return nil
}
