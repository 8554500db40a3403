package user

import (
	"context"

	"fridgetrack/entities"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		Create(ctx context.Context, user *entities.User) error
		GetByID(ctx context.Context, id string) (*entities.User, error)
		GetByGoogleID(ctx context.Context, googleID string) (*entities.User, error)
		Update(ctx context.Context, user *entities.User) error
		Delete(ctx context.Context, id string) error
		GetNotifiableUsers(ctx context.Context) ([]*entities.User, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByGoogleID(ctx context.Context, googleID string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("google_id = ?", googleID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.User{}).Error
}

// GetNotifiableUsers returns users that can receive an expiry notification:
// push token holders, plus users who opted in to notifications and can be
// reached by email.
func (r *userRepository) GetNotifiableUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).
		Where("fcm_token <> '' OR (notification_enable_notifications = ? AND email <> '')", true).
		Order("created_at asc").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
