package model

// PersonaStatus 人格的引导完成状态
type PersonaStatus string

const (
	PersonaDraft PersonaStatus = "draft" // 访谈未完成
	PersonaReady PersonaStatus = "ready" // 访谈已完成，可对话
)

// Persona 逝者人格，由创建者通过结构化访谈逐步构建
// swagger:model Persona
type Persona struct {
	UUIDBase
	UserID       uint          `gorm:"index;not null" json:"userId"` // 创建者 User.ID
	Name         string        `gorm:"size:100;not null" json:"name"`
	Relationship string        `gorm:"size:50" json:"relationship"` // 逝者与创建者的关系，如 mother / friend
	Avatar       string        `gorm:"size:255" json:"avatar"`
	VoiceID      string        `gorm:"size:100" json:"voiceId"` // TTS 声音模型，可由语音样本克隆得到
	Status       PersonaStatus `gorm:"type:enum('draft','ready');default:'draft'" json:"status"`
}

func (Persona) TableName() string {
	return "personas"
}
