package controller

import (
	"errors"

	"memoria_backend/internal/service"
	"memoria_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PersonaController 数字人格的增删改查
type PersonaController struct {
	PersonaService *service.PersonaService
}

func NewPersonaController(personaService *service.PersonaService) *PersonaController {
	return &PersonaController{PersonaService: personaService}
}

// CreatePersonaRequest 创建人格请求
// swagger:model CreatePersonaRequest
type CreatePersonaRequest struct {
	Name         string `json:"name" binding:"required" example:"玛利亚"`
	Relationship string `json:"relationship" binding:"required" example:"母亲"`
}

// UpdatePersonaRequest 更新人格请求，nil 字段不改动
type UpdatePersonaRequest struct {
	Name         *string `json:"name"`
	Relationship *string `json:"relationship"`
	Avatar       *string `json:"avatar"`
	VoiceID      *string `json:"voiceId"`
}

func respondPersonaError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrPersonaNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// Create godoc
// @Summary 创建数字人格
// @Description 为当前用户创建一个新的数字人格（草稿状态）
// @Tags 人格
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreatePersonaRequest true "人格基础信息"
// @Success 201 {object} util.Response{data=model.Persona} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/personas [post]
func (c *PersonaController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreatePersonaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	persona, err := c.PersonaService.Create(claims.UserID, req.Name, req.Relationship)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, persona)
}

// List godoc
// @Summary 获取人格列表
// @Description 获取当前用户创建的全部数字人格
// @Tags 人格
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Persona} "成功"
// @Router /api/personas [get]
func (c *PersonaController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	personas, err := c.PersonaService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, personas)
}

// Get godoc
// @Summary 获取单个人格
// @Description 获取指定 ID 的数字人格详情
// @Tags 人格
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Success 200 {object} util.Response{data=model.Persona} "成功"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "人格不存在"
// @Router /api/personas/{id} [get]
func (c *PersonaController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	persona, err := c.PersonaService.GetOwned(claims.UserID, ctx.Param("id"))
	if err != nil {
		respondPersonaError(ctx, err)
		return
	}

	util.Success(ctx, persona)
}

// Update godoc
// @Summary 更新人格
// @Description 更新人格的基础信息，未提供的字段保持不变
// @Tags 人格
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Param   body body UpdatePersonaRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.Persona} "成功"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "人格不存在"
// @Router /api/personas/{id} [put]
func (c *PersonaController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req UpdatePersonaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	persona, err := c.PersonaService.Update(claims.UserID, ctx.Param("id"), req.Name, req.Relationship, req.Avatar, req.VoiceID)
	if err != nil {
		respondPersonaError(ctx, err)
		return
	}

	util.Success(ctx, persona)
}

// Delete godoc
// @Summary 删除人格
// @Description 级联删除人格及其全部访谈回答、会话与消息
// @Tags 人格
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权访问"
// @Failure 404 {object} util.Response "人格不存在"
// @Router /api/personas/{id} [delete]
func (c *PersonaController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.PersonaService.Delete(claims.UserID, ctx.Param("id")); err != nil {
		respondPersonaError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
