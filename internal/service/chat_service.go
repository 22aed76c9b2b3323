package service

import (
	"context"
	"errors"
	"fmt"

	"memoria_backend/internal/model"
	"memoria_backend/internal/prompt"
	"memoria_backend/internal/repository"
	"memoria_backend/internal/safety"
	"memoria_backend/internal/util"
	"memoria_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ChatService 人格对话：每条消息现场注水提示词（从不缓存）、
// 过安全门禁、调模型、按需合成语音。
// 门禁结论只进日志，响应里只有音频 URL 的有无。
type ChatService struct {
	ChatRepo    *repository.ChatRepository
	PersonaRepo *repository.PersonaRepository
	AnswerRepo  *repository.AnswerRepository
	AI          *AIService
	Speech      *SpeechService
	Gate        *safety.VoiceGate

	historyDepth int
}

func NewChatService(chatRepo *repository.ChatRepository, personaRepo *repository.PersonaRepository, answerRepo *repository.AnswerRepository, ai *AIService, speech *SpeechService, gate *safety.VoiceGate) *ChatService {
	return &ChatService{
		ChatRepo:     chatRepo,
		PersonaRepo:  personaRepo,
		AnswerRepo:   answerRepo,
		AI:           ai,
		Speech:       speech,
		Gate:         gate,
		historyDepth: 12,
	}
}

func (s *ChatService) StartSession(userID uint, personaID, title string) (*model.ChatSession, error) {
	persona, err := s.ownedPersona(userID, personaID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = "With " + persona.Name
	}
	session := &model.ChatSession{
		UserID:    userID,
		PersonaID: personaID,
		Title:     title,
	}
	if err := s.ChatRepo.CreateSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

// EndSession 会话边界：清升级计数与历史缓存
func (s *ChatService) EndSession(userID uint, sessionID string) error {
	if _, err := s.ownedSession(userID, sessionID); err != nil {
		return err
	}
	s.Gate.Tracker().Reset(sessionID)
	s.ChatRepo.DropHistoryCache(sessionID)
	return nil
}

func (s *ChatService) ListSessions(userID uint, personaID string) ([]model.ChatSession, error) {
	return s.ChatRepo.ListSessions(userID, personaID)
}

func (s *ChatService) History(userID uint, sessionID string, limit, offset int) ([]model.ChatMessage, int64, error) {
	if _, err := s.ownedSession(userID, sessionID); err != nil {
		return nil, 0, err
	}
	return s.ChatRepo.ListMessages(sessionID, limit, offset)
}

// SendMessage 一轮对话。wantVoice 只表达客户端意愿，
// 最终是否出声由安全门禁决定。
func (s *ChatService) SendMessage(ctx context.Context, userID uint, sessionID, content string, wantVoice bool) (*model.ChatMessage, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	persona, err := s.ownedPersona(userID, session.PersonaID)
	if err != nil {
		return nil, err
	}

	// 无论本轮是否请求语音都先判定：依赖命中必须入账，
	// 否则窗口计数会随客户端开关漂移
	decision := s.Gate.Evaluate(sessionID, content)
	if !decision.VoiceAllowed {
		logger.Log.Info("voice reply suppressed",
			zap.String("session", sessionID),
			zap.String("reason", decision.Reason),
			zap.Any("flags", decision.Flags),
		)
	}

	systemPrompt, warnings := s.hydrate(persona)
	for _, w := range warnings {
		logger.Log.Warn("prompt hydration warning",
			zap.String("persona", persona.ID),
			zap.String("level", string(w.Level)),
			zap.String("section", string(w.Section)),
			zap.String("detail", w.Message),
		)
	}

	history, err := s.ChatRepo.RecentHistory(sessionID, s.historyDepth)
	if err != nil {
		return nil, err
	}

	reply, err := s.AI.Chat(systemPrompt, toAIMessages(history), content)
	if err != nil {
		return nil, err
	}

	userMsg := &model.ChatMessage{SessionID: sessionID, Role: model.MessageRoleUser, Content: content}
	if err := s.ChatRepo.AppendMessage(userMsg); err != nil {
		return nil, err
	}

	personaMsg := &model.ChatMessage{SessionID: sessionID, Role: model.MessageRolePersona, Content: reply}
	if wantVoice && decision.VoiceAllowed {
		objectName := fmt.Sprintf("personas/%s/replies/%s.mp3", persona.ID, model.GenerateUUID())
		audioURL, synthErr := s.Speech.Synthesize(reply, persona.VoiceID, objectName)
		if synthErr != nil {
			// 合成失败退回纯文本，不中断对话
			logger.Log.Error("TTS synthesis failed", zap.String("session", sessionID), zap.Error(synthErr))
		} else {
			personaMsg.AudioURL = audioURL
		}
	}
	if err := s.ChatRepo.AppendMessage(personaMsg); err != nil {
		return nil, err
	}
	return personaMsg, nil
}

// SendMessageStream 流式回复。门禁照常入账；流式轮次不产出语音。
func (s *ChatService) SendMessageStream(userID uint, sessionID, content string) (<-chan string, <-chan error, func(full string) error, error) {
	session, err := s.ownedSession(userID, sessionID)
	if err != nil {
		return nil, nil, nil, err
	}
	persona, err := s.ownedPersona(userID, session.PersonaID)
	if err != nil {
		return nil, nil, nil, err
	}

	if decision := s.Gate.Evaluate(sessionID, content); !decision.VoiceAllowed {
		logger.Log.Info("voice reply suppressed",
			zap.String("session", sessionID),
			zap.String("reason", decision.Reason),
		)
	}

	systemPrompt, _ := s.hydrate(persona)
	history, err := s.ChatRepo.RecentHistory(sessionID, s.historyDepth)
	if err != nil {
		return nil, nil, nil, err
	}

	out, errChan := s.AI.ChatStream(systemPrompt, toAIMessages(history), content)

	// 流结束后由调用方回填完整回复
	persist := func(full string) error {
		userMsg := &model.ChatMessage{SessionID: sessionID, Role: model.MessageRoleUser, Content: content}
		if err := s.ChatRepo.AppendMessage(userMsg); err != nil {
			return err
		}
		return s.ChatRepo.AppendMessage(&model.ChatMessage{
			SessionID: sessionID,
			Role:      model.MessageRolePersona,
			Content:   full,
		})
	}
	return out, errChan, persist, nil
}

// Hydrate 对外暴露一次注水（预览界面用），附带校验告警
func (s *ChatService) Hydrate(userID uint, personaID string) (prompt.Result, []prompt.Warning, error) {
	persona, err := s.ownedPersona(userID, personaID)
	if err != nil {
		return prompt.Result{}, nil, err
	}
	answers, err := s.AnswerRepo.GetForPersona(personaID)
	if err != nil {
		return prompt.Result{}, nil, err
	}
	result := prompt.Hydrate(persona.ID, persona.Name, answers)
	return result, prompt.Validate(result.Meta), nil
}

func (s *ChatService) hydrate(persona *model.Persona) (string, []prompt.Warning) {
	answers, err := s.AnswerRepo.GetForPersona(persona.ID)
	if err != nil {
		// 取不到回答就用模板默认行为，对话本身不应失败
		logger.Log.Error("failed to load answers for hydration", zap.String("persona", persona.ID), zap.Error(err))
		answers = nil
	}
	result := prompt.Hydrate(persona.ID, persona.Name, answers)
	return result.Prompt, prompt.Validate(result.Meta)
}

func (s *ChatService) ownedSession(userID uint, sessionID string) (*model.ChatSession, error) {
	session, err := s.ChatRepo.GetSession(sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return session, nil
}

func (s *ChatService) ownedPersona(userID uint, personaID string) (*model.Persona, error) {
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

func toAIMessages(history []model.ChatMessage) []AIChatMessage {
	out := make([]AIChatMessage, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == model.MessageRolePersona {
			role = "assistant"
		}
		out = append(out, AIChatMessage{Role: role, Content: m.Content})
	}
	return out
}
