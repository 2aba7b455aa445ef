package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/openlearnlab/practice-engine/internal/model"
)

type instanceRepository struct {
	db *gorm.DB
}

func NewInstanceRepository(db *gorm.DB) InstanceRepository {
	return &instanceRepository{db: db}
}

func (r *instanceRepository) Create(ctx context.Context, instance *model.ExerciseInstance) error {
	return r.db.WithContext(ctx).Create(instance).Error
}

func (r *instanceRepository) FindByID(ctx context.Context, id string) (*model.ExerciseInstance, error) {
	var instance model.ExerciseInstance
	if err := r.db.WithContext(ctx).First(&instance, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrInstanceNotFound
		}
		return nil, err
	}
	return &instance, nil
}
