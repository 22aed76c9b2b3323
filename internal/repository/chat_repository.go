package repository

import (
	"context"
	"encoding/json"
	"time"

	"memoria_backend/internal/model"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ChatRepository 会话与消息的持久化。最近上下文在 Redis 里保一份热缓存，
// 对话时取上下文不必每条消息都打数据库。
type ChatRepository struct {
	DB           *gorm.DB
	Redis        *redis.Client
	ctx          context.Context
	historyDepth int64
	historyTTL   time.Duration
}

func NewChatRepository(db *gorm.DB, rdb *redis.Client) *ChatRepository {
	return &ChatRepository{
		DB:           db,
		Redis:        rdb,
		ctx:          context.Background(),
		historyDepth: 20,
		historyTTL:   6 * time.Hour,
	}
}

func historyKey(sessionID string) string {
	return "chat:history:" + sessionID
}

func (r *ChatRepository) CreateSession(session *model.ChatSession) error {
	return r.DB.Create(session).Error
}

func (r *ChatRepository) GetSession(id string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.DB.First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *ChatRepository) ListSessions(userID uint, personaID string) ([]model.ChatSession, error) {
	var sessions []model.ChatSession
	db := r.DB.Where("user_id = ?", userID)
	if personaID != "" {
		db = db.Where("persona_id = ?", personaID)
	}
	err := db.Order("last_message_at DESC").Find(&sessions).Error
	return sessions, err
}

// AppendMessage 落库并推进会话时间线与 Redis 热缓存
func (r *ChatRepository) AppendMessage(msg *model.ChatMessage) error {
	if err := r.DB.Create(msg).Error; err != nil {
		return err
	}
	now := time.Now()
	r.DB.Model(&model.ChatSession{}).Where("id = ?", msg.SessionID).
		Update("last_message_at", &now)

	if r.Redis != nil {
		if b, err := json.Marshal(msg); err == nil {
			key := historyKey(msg.SessionID)
			pipe := r.Redis.Pipeline()
			pipe.RPush(r.ctx, key, b)
			pipe.LTrim(r.ctx, key, -r.historyDepth, -1)
			pipe.Expire(r.ctx, key, r.historyTTL)
			pipe.Exec(r.ctx)
		}
	}
	return nil
}

// RecentHistory 取最近 n 条消息作为对话上下文，优先走缓存
func (r *ChatRepository) RecentHistory(sessionID string, n int) ([]model.ChatMessage, error) {
	if r.Redis != nil {
		raw, err := r.Redis.LRange(r.ctx, historyKey(sessionID), int64(-n), -1).Result()
		if err == nil && len(raw) > 0 {
			msgs := make([]model.ChatMessage, 0, len(raw))
			ok := true
			for _, item := range raw {
				var m model.ChatMessage
				if json.Unmarshal([]byte(item), &m) != nil {
					ok = false
					break
				}
				msgs = append(msgs, m)
			}
			if ok {
				return msgs, nil
			}
		}
	}

	var msgs []model.ChatMessage
	err := r.DB.Where("session_id = ?", sessionID).
		Order("created_at DESC").Limit(n).Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	// 倒序查回来的翻正
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// ListMessages 分页历史
func (r *ChatRepository) ListMessages(sessionID string, limit, offset int) ([]model.ChatMessage, int64, error) {
	var msgs []model.ChatMessage
	var total int64

	db := r.DB.Model(&model.ChatMessage{}).Where("session_id = ?", sessionID)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("created_at ASC").Limit(limit).Offset(offset).Find(&msgs).Error
	return msgs, total, err
}

// DropHistoryCache 会话删除或人格级联时清缓存
func (r *ChatRepository) DropHistoryCache(sessionID string) {
	if r.Redis != nil {
		r.Redis.Del(r.ctx, historyKey(sessionID))
	}
}
