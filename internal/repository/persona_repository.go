package repository

import (
	"memoria_backend/internal/model"

	"gorm.io/gorm"
)

type PersonaRepository struct {
	DB *gorm.DB
}

func NewPersonaRepository(db *gorm.DB) *PersonaRepository {
	return &PersonaRepository{DB: db}
}

func (r *PersonaRepository) Create(persona *model.Persona) error {
	return r.DB.Create(persona).Error
}

func (r *PersonaRepository) GetByID(id string) (*model.Persona, error) {
	var persona model.Persona
	err := r.DB.First(&persona, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &persona, nil
}

func (r *PersonaRepository) ListByUser(userID uint) ([]model.Persona, error) {
	var personas []model.Persona
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&personas).Error
	return personas, err
}

func (r *PersonaRepository) Update(persona *model.Persona) error {
	return r.DB.Save(persona).Error
}

// Delete 整体级联：回答、会话、消息随人格一并删除，日记只解除关联
func (r *PersonaRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("persona_id = ?", id).Delete(&model.OnboardingAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id IN (?)",
			tx.Model(&model.ChatSession{}).Select("id").Where("persona_id = ?", id),
		).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("persona_id = ?", id).Delete(&model.ChatSession{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.JournalEntry{}).Where("persona_id = ?", id).
			Update("persona_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Persona{}, "id = ?", id).Error
	})
}
