package lecture

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"unidash/internal/models"
)

// GormStore persists lectures in Postgres. Deletion relies on gorm's
// soft delete, so removed lectures drop out of every query.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Get(ctx context.Context, id uint) (models.Lecture, error) {
	var l models.Lecture
	err := s.db.WithContext(ctx).Preload("Course").First(&l, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Lecture{}, ErrNotFound
	}
	return l, err
}

func (s *GormStore) Create(ctx context.Context, l *models.Lecture) error {
	return s.db.WithContext(ctx).Create(l).Error
}

func (s *GormStore) Update(ctx context.Context, l *models.Lecture) error {
	return s.db.WithContext(ctx).Omit("Course").Save(l).Error
}

func (s *GormStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Lecture{}, id).Error
}
