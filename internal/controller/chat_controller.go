package controller

import (
	"errors"
	"io"
	"strings"

	"memoria_backend/internal/service"
	"memoria_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// ChatController 与数字人格的对话
type ChatController struct {
	ChatService *service.ChatService
}

func NewChatController(chatService *service.ChatService) *ChatController {
	return &ChatController{ChatService: chatService}
}

// StartSessionRequest 开启会话请求
type StartSessionRequest struct {
	PersonaID string `json:"personaId" binding:"required"`
	Title     string `json:"title"`
}

// SendChatMessageRequest 发送消息请求
type SendChatMessageRequest struct {
	Content   string `json:"content" binding:"required"`
	WantVoice bool   `json:"wantVoice"`
}

func respondChatError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrPersonaNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// StartSession godoc
// @Summary 开启会话
// @Description 与指定数字人格开启一个新的对话会话
// @Tags 对话
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartSessionRequest true "会话信息"
// @Success 201 {object} util.Response{data=model.ChatSession} "创建成功"
// @Failure 404 {object} util.Response "人格不存在"
// @Router /api/chat/sessions [post]
func (c *ChatController) StartSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.ChatService.StartSession(claims.UserID, req.PersonaID, req.Title)
	if err != nil {
		respondChatError(ctx, err)
		return
	}

	util.Created(ctx, session)
}

// EndSession godoc
// @Summary 结束会话
// @Description 结束会话并清理其缓存状态
// @Tags 对话
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "会话ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/chat/sessions/{id}/end [post]
func (c *ChatController) EndSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.ChatService.EndSession(claims.UserID, ctx.Param("id")); err != nil {
		respondChatError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// ListSessions godoc
// @Summary 获取会话列表
// @Description 获取当前用户与某人格（可选）的全部会话
// @Tags 对话
// @Produce  json
// @Security ApiKeyAuth
// @Param   personaId query string false "按人格ID筛选"
// @Success 200 {object} util.Response{data=[]model.ChatSession} "成功"
// @Router /api/chat/sessions [get]
func (c *ChatController) ListSessions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.ChatService.ListSessions(claims.UserID, ctx.Query("personaId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sessions)
}

// GetHistory godoc
// @Summary 获取历史消息
// @Description 分页获取会话的历史消息
// @Tags 对话
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "会话ID"
// @Param   page query int false "页码 (从1开始)" default(1)
// @Param   limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.ChatMessage}} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/chat/sessions/{id}/messages [get]
func (c *ChatController) GetHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := util.ParsePage(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	messages, total, err := c.ChatService.History(claims.UserID, ctx.Param("id"), limit, offset)
	if err != nil {
		respondChatError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  messages,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// SendMessage godoc
// @Summary 发送消息
// @Description 发送一条消息并获取人格的回复；wantVoice 表达客户端意愿，回复是否带语音由服务端决定
// @Tags 对话
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "会话ID"
// @Param   body body SendChatMessageRequest true "消息内容"
// @Success 200 {object} util.Response{data=model.ChatMessage} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/chat/sessions/{id}/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.ChatService.SendMessage(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Content, req.WantVoice)
	if err != nil {
		respondChatError(ctx, err)
		return
	}

	util.Success(ctx, msg)
}

// SendMessageStream godoc
// @Summary 流式发送消息
// @Description 以 SSE 流式返回人格的回复，流式轮次不产出语音
// @Tags 对话
// @Accept  json
// @Produce  text/event-stream
// @Security ApiKeyAuth
// @Param   id path string true "会话ID"
// @Param   body body SendChatMessageRequest true "消息内容"
// @Success 200 {string} string "SSE 数据流"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/chat/sessions/{id}/messages/stream [post]
func (c *ChatController) SendMessageStream(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SendChatMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, errChan, persist, err := c.ChatService.SendMessageStream(claims.UserID, ctx.Param("id"), req.Content)
	if err != nil {
		respondChatError(ctx, err)
		return
	}

	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")

	var full strings.Builder
	ctx.Stream(func(w io.Writer) bool {
		select {
		case chunk, ok := <-out:
			if !ok {
				ctx.SSEvent("done", "")
				return false
			}
			full.WriteString(chunk)
			ctx.SSEvent("message", chunk)
			return true
		case streamErr := <-errChan:
			if streamErr != nil {
				ctx.SSEvent("error", streamErr.Error())
			}
			return false
		}
	})

	if full.Len() > 0 {
		if err := persist(full.String()); err != nil {
			util.LogInternalError(ctx, err)
		}
	}
}

// PreviewPrompt godoc
// @Summary 预览系统提示词
// @Description 返回某人格当前注入后的完整系统提示词与完备性告警，供创建者检视
// @Tags 对话
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "人格不存在"
// @Router /api/personas/{id}/prompt [get]
func (c *ChatController) PreviewPrompt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, warnings, err := c.ChatService.Hydrate(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondChatError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"prompt":   result.Prompt,
		"meta":     result.Meta,
		"warnings": warnings,
	})
}
