package controller

import (
	"errors"

	"memoria_backend/internal/service"
	"memoria_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// JournalController 哀伤日记
type JournalController struct {
	JournalService *service.JournalService
}

func NewJournalController(journalService *service.JournalService) *JournalController {
	return &JournalController{JournalService: journalService}
}

// CreateJournalRequest 创建日记请求
type CreateJournalRequest struct {
	PersonaID *string `json:"personaId"`
	Title     string  `json:"title" binding:"required"`
	Body      string  `json:"body" binding:"required"`
	Mood      string  `json:"mood"`
}

// UpdateJournalRequest 更新日记请求，nil 字段不改动
type UpdateJournalRequest struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
	Mood  *string `json:"mood"`
}

func respondJournalError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrEntryNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// Create godoc
// @Summary 写日记
// @Description 创建一篇日记，可关联某个人格
// @Tags 日记
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateJournalRequest true "日记内容"
// @Success 201 {object} util.Response{data=model.JournalEntry} "创建成功"
// @Router /api/journal [post]
func (c *JournalController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateJournalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.JournalService.Create(claims.UserID, req.PersonaID, req.Title, req.Body, req.Mood)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, entry)
}

// List godoc
// @Summary 获取日记列表
// @Description 分页获取当前用户的日记
// @Tags 日记
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "页码 (从1开始)" default(1)
// @Param   limit query int false "每页条数" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse{list=[]model.JournalEntry}} "成功"
// @Router /api/journal [get]
func (c *JournalController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, limit := util.ParsePage(ctx.DefaultQuery("page", "1"), ctx.DefaultQuery("limit", "20"))
	offset := (page - 1) * limit

	entries, total, err := c.JournalService.List(claims.UserID, limit, offset)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  entries,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Update godoc
// @Summary 更新日记
// @Description 更新一篇日记，未提供的字段保持不变
// @Tags 日记
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path uint true "日记ID"
// @Param   body body UpdateJournalRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.JournalEntry} "成功"
// @Failure 404 {object} util.Response "日记不存在"
// @Router /api/journal/{id} [put]
func (c *JournalController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdateJournalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.JournalService.Update(claims.UserID, util.MustParseUint(ctx.Param("id")), req.Title, req.Body, req.Mood)
	if err != nil {
		respondJournalError(ctx, err)
		return
	}

	util.Success(ctx, entry)
}

// Delete godoc
// @Summary 删除日记
// @Description 删除一篇日记
// @Tags 日记
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path uint true "日记ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "日记不存在"
// @Router /api/journal/{id} [delete]
func (c *JournalController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.JournalService.Delete(claims.UserID, util.MustParseUint(ctx.Param("id"))); err != nil {
		respondJournalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
