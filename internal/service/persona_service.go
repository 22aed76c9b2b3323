package service

import (
	"errors"

	"memoria_backend/internal/model"
	"memoria_backend/internal/repository"
	"memoria_backend/internal/safety"
	"memoria_backend/internal/util"

	"gorm.io/gorm"
)

type PersonaService struct {
	PersonaRepo *repository.PersonaRepository
	ChatRepo    *repository.ChatRepository
	Gate        *safety.VoiceGate
}

func NewPersonaService(personaRepo *repository.PersonaRepository, chatRepo *repository.ChatRepository, gate *safety.VoiceGate) *PersonaService {
	return &PersonaService{
		PersonaRepo: personaRepo,
		ChatRepo:    chatRepo,
		Gate:        gate,
	}
}

func (s *PersonaService) Create(userID uint, name, relationship string) (*model.Persona, error) {
	persona := &model.Persona{
		UserID:       userID,
		Name:         name,
		Relationship: relationship,
		Status:       model.PersonaDraft,
	}
	if err := s.PersonaRepo.Create(persona); err != nil {
		return nil, err
	}
	return persona, nil
}

// GetOwned 取人格并校验归属，防止越权访问他人的人格
func (s *PersonaService) GetOwned(userID uint, personaID string) (*model.Persona, error) {
	persona, err := s.PersonaRepo.GetByID(personaID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPersonaNotFound
	}
	if err != nil {
		return nil, err
	}
	if persona.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return persona, nil
}

func (s *PersonaService) List(userID uint) ([]model.Persona, error) {
	return s.PersonaRepo.ListByUser(userID)
}

func (s *PersonaService) Update(userID uint, personaID string, name, relationship, avatar, voiceID *string) (*model.Persona, error) {
	persona, err := s.GetOwned(userID, personaID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		persona.Name = *name
	}
	if relationship != nil {
		persona.Relationship = *relationship
	}
	if avatar != nil {
		persona.Avatar = *avatar
	}
	if voiceID != nil {
		persona.VoiceID = *voiceID
	}
	if err := s.PersonaRepo.Update(persona); err != nil {
		return nil, err
	}
	return persona, nil
}

// Delete 级联删除，同时清掉该人格会话的升级计数与历史缓存（会话边界）
func (s *PersonaService) Delete(userID uint, personaID string) error {
	if _, err := s.GetOwned(userID, personaID); err != nil {
		return err
	}

	sessions, err := s.ChatRepo.ListSessions(userID, personaID)
	if err == nil {
		for _, sess := range sessions {
			s.Gate.Tracker().Reset(sess.ID)
			s.ChatRepo.DropHistoryCache(sess.ID)
		}
	}
	return s.PersonaRepo.Delete(personaID)
}
