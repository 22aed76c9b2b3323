package model

// JournalEntry 哀伤日记条目，与人格无关的私人记录
// swagger:model JournalEntry
type JournalEntry struct {
	BaseModel
	UserID    uint    `gorm:"index;not null" json:"userId"`
	PersonaID *string `gorm:"index;type:varchar(36)" json:"personaId,omitempty"` // 可选：写给某个人格
	Title     string  `gorm:"size:120" json:"title"`
	Body      string  `gorm:"type:text;not null" json:"body"`
	Mood      string  `gorm:"size:30" json:"mood"` // 如 calm / heavy / grateful
}

func (JournalEntry) TableName() string {
	return "journal_entries"
}
