package service

import (
	"errors"

	"memoria_backend/internal/model"
	"memoria_backend/internal/repository"
	"memoria_backend/internal/util"

	"gorm.io/gorm"
)

type JournalService struct {
	JournalRepo *repository.JournalRepository
}

func NewJournalService(journalRepo *repository.JournalRepository) *JournalService {
	return &JournalService{JournalRepo: journalRepo}
}

func (s *JournalService) Create(userID uint, personaID *string, title, body, mood string) (*model.JournalEntry, error) {
	entry := &model.JournalEntry{
		UserID:    userID,
		PersonaID: personaID,
		Title:     title,
		Body:      body,
		Mood:      mood,
	}
	if err := s.JournalRepo.Create(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) List(userID uint, limit, offset int) ([]model.JournalEntry, int64, error) {
	return s.JournalRepo.ListByUser(userID, limit, offset)
}

func (s *JournalService) Update(userID, entryID uint, title, body, mood *string) (*model.JournalEntry, error) {
	entry, err := s.owned(userID, entryID)
	if err != nil {
		return nil, err
	}
	if title != nil {
		entry.Title = *title
	}
	if body != nil {
		entry.Body = *body
	}
	if mood != nil {
		entry.Mood = *mood
	}
	if err := s.JournalRepo.Update(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *JournalService) Delete(userID, entryID uint) error {
	if _, err := s.owned(userID, entryID); err != nil {
		return err
	}
	return s.JournalRepo.Delete(entryID)
}

func (s *JournalService) owned(userID, entryID uint) (*model.JournalEntry, error) {
	entry, err := s.JournalRepo.GetByID(entryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	if entry.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return entry, nil
}
