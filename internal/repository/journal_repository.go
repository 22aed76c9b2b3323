package repository

import (
	"memoria_backend/internal/model"

	"gorm.io/gorm"
)

type JournalRepository struct {
	DB *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{DB: db}
}

func (r *JournalRepository) Create(entry *model.JournalEntry) error {
	return r.DB.Create(entry).Error
}

func (r *JournalRepository) GetByID(id uint) (*model.JournalEntry, error) {
	var entry model.JournalEntry
	err := r.DB.First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *JournalRepository) ListByUser(userID uint, limit, offset int) ([]model.JournalEntry, int64, error) {
	var entries []model.JournalEntry
	var total int64

	db := r.DB.Model(&model.JournalEntry{}).Where("user_id = ?", userID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&entries).Error
	return entries, total, err
}

func (r *JournalRepository) Update(entry *model.JournalEntry) error {
	return r.DB.Save(entry).Error
}

func (r *JournalRepository) Delete(id uint) error {
	return r.DB.Delete(&model.JournalEntry{}, id).Error
}
