package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openlearnlab/practice-engine/internal/model"
)

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) CountScored(ctx context.Context, instanceID string, actor model.Actor) (int, error) {
	query := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("instance_id = ? AND reveal_used = ?", instanceID, false)
	if actor.UserID != nil && *actor.UserID != "" {
		query = query.Where("user_id = ?", *actor.UserID)
	} else if actor.GuestID != nil && *actor.GuestID != "" {
		query = query.Where("guest_id = ?", *actor.GuestID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *attemptRepository) FindByInstance(ctx context.Context, instanceID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.WithContext(ctx).
		Where("instance_id = ?", instanceID).
		Order("created_at ASC").
		Find(&attempts).Error
	return attempts, err
}
