package controller

import (
	"errors"
	"os"
	"path/filepath"

	"memoria_backend/internal/catalog"
	"memoria_backend/internal/model"
	"memoria_backend/internal/repository"
	"memoria_backend/internal/service"
	"memoria_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// OnboardingController 结构化访谈：题库、答题、附件与进度
type OnboardingController struct {
	OnboardingService *service.OnboardingService
	PersonaService    *service.PersonaService
}

func NewOnboardingController(onboardingService *service.OnboardingService, personaService *service.PersonaService) *OnboardingController {
	return &OnboardingController{
		OnboardingService: onboardingService,
		PersonaService:    personaService,
	}
}

// SubmitAnswerRequest 提交回答请求，nil 字段不覆盖已有内容
type SubmitAnswerRequest struct {
	QuestionID      string  `json:"questionId" binding:"required" example:"q_rel_who"`
	TextResponse    *string `json:"textResponse"`
	VoiceTranscript *string `json:"voiceTranscript"`
	SelectedOption  *string `json:"selectedOption"`
}

func respondOnboardingError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuestionNotFound):
		util.Error(ctx, 404, "题目不存在")
	case errors.Is(err, util.ErrInvalidOption):
		util.BadRequest(ctx, "无效的选项")
	case errors.Is(err, util.ErrInvalidMediaKind):
		util.BadRequest(ctx, "无效的附件类型")
	case errors.Is(err, util.ErrAudioTooLong):
		util.BadRequest(ctx, "音频时长超过上限")
	case errors.Is(err, util.ErrUnsupportedFileType):
		util.BadRequest(ctx, "不支持的文件格式")
	case errors.Is(err, repository.ErrMediaNotFound):
		util.Error(ctx, 404, "附件不存在")
	default:
		util.LogInternalError(ctx, err)
	}
}

// ownedPersona 所有访谈接口先过归属校验
func (c *OnboardingController) ownedPersona(ctx *gin.Context) (string, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return "", false
	}
	personaID := ctx.Param("id")
	if _, err := c.PersonaService.GetOwned(claims.UserID, personaID); err != nil {
		respondPersonaError(ctx, err)
		return "", false
	}
	return personaID, true
}

// GetQuestionnaire godoc
// @Summary 获取访谈题库
// @Description 返回全部访谈小节及其题目，按展示顺序排列
// @Tags 访谈
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/onboarding/questionnaire [get]
func (c *OnboardingController) GetQuestionnaire(ctx *gin.Context) {
	type sectionView struct {
		catalog.Section
		Questions []catalog.Question `json:"questions"`
	}
	sections := catalog.Sections()
	list := make([]sectionView, 0, len(sections))
	for _, s := range sections {
		list = append(list, sectionView{
			Section:   s,
			Questions: catalog.QuestionsInSection(s.ID),
		})
	}
	util.Success(ctx, gin.H{
		"totalQuestions": catalog.TotalQuestions,
		"sections":       list,
	})
}

// SubmitAnswer godoc
// @Summary 提交访谈回答
// @Description 提交或更新某题的回答，合并语义，未提供的字段不会被清空
// @Tags 访谈
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Param   body body SubmitAnswerRequest true "回答内容"
// @Success 200 {object} util.Response{data=model.OnboardingAnswer} "成功"
// @Failure 400 {object} util.Response "无效的选项"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/personas/{id}/answers [post]
func (c *OnboardingController) SubmitAnswer(ctx *gin.Context) {
	personaID, ok := c.ownedPersona(ctx)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	answer, err := c.OnboardingService.SubmitAnswer(personaID, req.QuestionID, repository.AnswerPatch{
		TextResponse:    req.TextResponse,
		VoiceTranscript: req.VoiceTranscript,
		SelectedOption:  req.SelectedOption,
	})
	if err != nil {
		respondOnboardingError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}

// SubmitVoiceAnswer godoc
// @Summary 语音作答
// @Description 上传一段语音回答，服务端转写后存入回答并把录音挂为附件
// @Tags 访谈
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Param   questionId formData string true "题目ID"
// @Param   audio formData file true "音频文件"
// @Success 200 {object} util.Response{data=model.OnboardingAnswer} "成功"
// @Failure 400 {object} util.Response "音频不合法或过长"
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/personas/{id}/answers/voice [post]
func (c *OnboardingController) SubmitVoiceAnswer(ctx *gin.Context) {
	personaID, ok := c.ownedPersona(ctx)
	if !ok {
		return
	}

	questionID := ctx.PostForm("questionId")
	if questionID == "" {
		util.BadRequest(ctx, "questionId 不能为空")
		return
	}

	file, err := ctx.FormFile("audio")
	if err != nil {
		util.BadRequest(ctx, "音频文件不能为空")
		return
	}
	if !util.ExtensionAllowed(file.Filename, util.AllowedAudioExtensions) {
		util.BadRequest(ctx, "不支持的音频格式")
		return
	}

	// 先落临时文件，ffmpeg 探测与转写都走本地路径
	tmpPath := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(file.Filename))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	answer, err := c.OnboardingService.SubmitVoiceAnswer(ctx.Request.Context(), personaID, questionID, tmpPath)
	if err != nil {
		respondOnboardingError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}

// AttachMedia godoc
// @Summary 上传回答附件
// @Description 向某题的回答追加照片、音频或视频附件
// @Tags 访谈
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Param   questionId formData string true "题目ID"
// @Param   kind formData string true "附件类型" Enums(photo,audio,video)
// @Param   file formData file true "附件文件"
// @Success 200 {object} util.Response{data=model.OnboardingAnswer} "成功"
// @Failure 400 {object} util.Response "文件类型不合法"
// @Router /api/personas/{id}/answers/media [post]
func (c *OnboardingController) AttachMedia(ctx *gin.Context) {
	personaID, ok := c.ownedPersona(ctx)
	if !ok {
		return
	}

	questionID := ctx.PostForm("questionId")
	kind := model.MediaKind(ctx.PostForm("kind"))
	if questionID == "" {
		util.BadRequest(ctx, "questionId 不能为空")
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "文件不能为空")
		return
	}

	answer, err := c.OnboardingService.AttachMedia(ctx.Request.Context(), personaID, questionID, kind, file)
	if err != nil {
		respondOnboardingError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}

// RemoveMedia godoc
// @Summary 删除回答附件
// @Description 从某题的回答中摘除指定附件
// @Tags 访谈
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Param   questionId query string true "题目ID"
// @Param   kind query string true "附件类型" Enums(photo,audio,video)
// @Param   mediaId path string true "附件ID"
// @Success 200 {object} util.Response{data=model.OnboardingAnswer} "成功"
// @Failure 404 {object} util.Response "附件不存在"
// @Router /api/personas/{id}/answers/media/{mediaId} [delete]
func (c *OnboardingController) RemoveMedia(ctx *gin.Context) {
	personaID, ok := c.ownedPersona(ctx)
	if !ok {
		return
	}

	questionID := ctx.Query("questionId")
	kind := model.MediaKind(ctx.Query("kind"))
	mediaID := ctx.Param("mediaId")

	answer, err := c.OnboardingService.RemoveMedia(ctx.Request.Context(), personaID, questionID, kind, mediaID)
	if err != nil {
		respondOnboardingError(ctx, err)
		return
	}

	util.Success(ctx, answer)
}

// ListAnswers godoc
// @Summary 获取全部回答
// @Description 返回某人格的全部访谈回答
// @Tags 访谈
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Success 200 {object} util.Response{data=[]model.OnboardingAnswer} "成功"
// @Router /api/personas/{id}/answers [get]
func (c *OnboardingController) ListAnswers(ctx *gin.Context) {
	personaID, ok := c.ownedPersona(ctx)
	if !ok {
		return
	}

	answers, err := c.OnboardingService.ListAnswers(personaID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, answers)
}

// GetProgress godoc
// @Summary 获取访谈进度
// @Description 返回某人格的访谈完成度统计
// @Tags 访谈
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "人格ID"
// @Success 200 {object} util.Response{data=service.Progress} "成功"
// @Router /api/personas/{id}/progress [get]
func (c *OnboardingController) GetProgress(ctx *gin.Context) {
	personaID, ok := c.ownedPersona(ctx)
	if !ok {
		return
	}

	progress, err := c.OnboardingService.GetProgress(personaID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, progress)
}
