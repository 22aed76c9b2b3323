package model

import "time"

// ChatSession 与某个人格的一段对话，会话切换是安全升级计数的边界
// swagger:model ChatSession
type ChatSession struct {
	UUIDBase
	UserID        uint       `gorm:"index" json:"userId"`
	PersonaID     string     `gorm:"index;type:varchar(36);not null" json:"personaId"`
	Title         string     `gorm:"size:100" json:"title"`
	LastMessageAt *time.Time `json:"lastMessageAt"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

type MessageRole string

const (
	MessageRoleUser    MessageRole = "user"
	MessageRolePersona MessageRole = "persona"
)

// ChatMessage 会话内一条消息；人格回复可能带有 TTS 音频
// swagger:model ChatMessage
type ChatMessage struct {
	UUIDBase
	SessionID string      `gorm:"index;index:idx_session_created;type:varchar(36);not null" json:"sessionId"`
	CreatedAt time.Time   `gorm:"index:idx_session_created" json:"createdAt"`
	Role      MessageRole `gorm:"type:enum('user','persona');not null" json:"role"`
	Content   string      `gorm:"type:text" json:"content"`
	AudioURL  string      `gorm:"size:255" json:"audioUrl,omitempty"` // 语音回复被安全门禁拦下时为空，原因不对外暴露
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
