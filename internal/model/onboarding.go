package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// MediaKind 访谈回答可附加的媒体类型
type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaAudio MediaKind = "audio"
	MediaVideo MediaKind = "video"
)

// MediaItem 一条已上传的媒体附件
type MediaItem struct {
	ID         string    `json:"id"`
	Path       string    `json:"path"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// MediaList 以 JSON 列存储的附件列表
type MediaList []MediaItem

func (m MediaList) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *MediaList) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported media list column type")
	}
	if len(b) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(b, m)
}

// OnboardingAnswer 一条访谈回答，(persona_id, question_id) 唯一，重复提交按合并语义更新
// swagger:model OnboardingAnswer
type OnboardingAnswer struct {
	UUIDBase
	PersonaID       string    `gorm:"uniqueIndex:idx_persona_question;type:varchar(36);not null" json:"personaId"`
	QuestionID      string    `gorm:"uniqueIndex:idx_persona_question;size:64;not null" json:"questionId"`
	TextResponse    *string   `gorm:"type:text" json:"textResponse,omitempty"`
	VoiceTranscript *string   `gorm:"type:text" json:"voiceTranscript,omitempty"` // 语音回答的转写文本，语音为主要输入方式
	SelectedOption  *string   `gorm:"size:64" json:"selectedOption,omitempty"`
	Photos          MediaList `gorm:"type:json" json:"photos"`
	AudioClips      MediaList `gorm:"type:json" json:"audioClips"`
	VideoClips      MediaList `gorm:"type:json" json:"videoClips"`
}

func (OnboardingAnswer) TableName() string {
	return "onboarding_answers"
}

// Meaningful 判断回答是否携带有效内容：文本、转写、选项或任一非空媒体列表
func (a *OnboardingAnswer) Meaningful() bool {
	if a.TextResponse != nil && *a.TextResponse != "" {
		return true
	}
	if a.VoiceTranscript != nil && *a.VoiceTranscript != "" {
		return true
	}
	if a.SelectedOption != nil && *a.SelectedOption != "" {
		return true
	}
	return len(a.Photos) > 0 || len(a.AudioClips) > 0 || len(a.VideoClips) > 0
}

// MediaOf 返回指定类型的附件列表
func (a *OnboardingAnswer) MediaOf(kind MediaKind) MediaList {
	switch kind {
	case MediaPhoto:
		return a.Photos
	case MediaAudio:
		return a.AudioClips
	case MediaVideo:
		return a.VideoClips
	}
	return nil
}
