package repository

import (
	"errors"

	"memoria_backend/internal/model"

	"gorm.io/gorm"
)

var ErrMediaNotFound = errors.New("media item not found")

// AnswerPatch 一次提交中显式给出的字段；nil 字段保持原值不动
type AnswerPatch struct {
	TextResponse    *string
	VoiceTranscript *string
	SelectedOption  *string
}

// applyAnswerPatch 合并语义：只覆盖补丁中非 nil 的字段，
// 部分更新绝不清掉未提及字段里已有的内容
func applyAnswerPatch(a *model.OnboardingAnswer, p AnswerPatch) {
	if p.TextResponse != nil {
		a.TextResponse = p.TextResponse
	}
	if p.VoiceTranscript != nil {
		a.VoiceTranscript = p.VoiceTranscript
	}
	if p.SelectedOption != nil {
		a.SelectedOption = p.SelectedOption
	}
}

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

// Upsert 按 (personaID, questionID) 建或改一条回答，合并语义，Save 刷新 updatedAt
func (r *AnswerRepository) Upsert(personaID, questionID string, patch AnswerPatch) (*model.OnboardingAnswer, error) {
	var answer model.OnboardingAnswer
	err := r.DB.Where("persona_id = ? AND question_id = ?", personaID, questionID).First(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		answer = model.OnboardingAnswer{PersonaID: personaID, QuestionID: questionID}
		applyAnswerPatch(&answer, patch)
		if err := r.DB.Create(&answer).Error; err != nil {
			return nil, err
		}
		return &answer, nil
	}
	if err != nil {
		return nil, err
	}

	applyAnswerPatch(&answer, patch)
	if err := r.DB.Save(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

// GetForPersona 返回某人格的全部回答
func (r *AnswerRepository) GetForPersona(personaID string) ([]model.OnboardingAnswer, error) {
	var answers []model.OnboardingAnswer
	err := r.DB.Where("persona_id = ?", personaID).Find(&answers).Error
	return answers, err
}

// Get 按 (personaID, questionID) 取单条回答
func (r *AnswerRepository) Get(personaID, questionID string) (*model.OnboardingAnswer, error) {
	var answer model.OnboardingAnswer
	err := r.DB.Where("persona_id = ? AND question_id = ?", personaID, questionID).First(&answer).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// AddMedia 向回答的指定媒体列表追加一项；记录不存在时先建空记录
func (r *AnswerRepository) AddMedia(personaID, questionID string, kind model.MediaKind, item model.MediaItem) (*model.OnboardingAnswer, error) {
	answer, err := r.Upsert(personaID, questionID, AnswerPatch{})
	if err != nil {
		return nil, err
	}
	switch kind {
	case model.MediaPhoto:
		answer.Photos = append(answer.Photos, item)
	case model.MediaAudio:
		answer.AudioClips = append(answer.AudioClips, item)
	case model.MediaVideo:
		answer.VideoClips = append(answer.VideoClips, item)
	}
	if err := r.DB.Save(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

// RemoveMedia 按生成的媒体 ID 从回答中过滤掉一项
func (r *AnswerRepository) RemoveMedia(personaID, questionID string, kind model.MediaKind, mediaID string) (*model.OnboardingAnswer, error) {
	answer, err := r.Get(personaID, questionID)
	if err != nil {
		return nil, err
	}

	filter := func(list model.MediaList) (model.MediaList, bool) {
		kept := make(model.MediaList, 0, len(list))
		removed := false
		for _, item := range list {
			if item.ID == mediaID {
				removed = true
				continue
			}
			kept = append(kept, item)
		}
		return kept, removed
	}

	var removed bool
	switch kind {
	case model.MediaPhoto:
		answer.Photos, removed = filter(answer.Photos)
	case model.MediaAudio:
		answer.AudioClips, removed = filter(answer.AudioClips)
	case model.MediaVideo:
		answer.VideoClips, removed = filter(answer.VideoClips)
	}
	if !removed {
		return nil, ErrMediaNotFound
	}

	if err := r.DB.Save(answer).Error; err != nil {
		return nil, err
	}
	return answer, nil
}

// DeleteForPersona 人格级联删除时清空其全部回答
func (r *AnswerRepository) DeleteForPersona(tx *gorm.DB, personaID string) error {
	return tx.Where("persona_id = ?", personaID).Delete(&model.OnboardingAnswer{}).Error
}
