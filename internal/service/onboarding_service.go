package service

import (
	"context"
	"fmt"
	"math"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"memoria_backend/internal/catalog"
	"memoria_backend/internal/model"
	"memoria_backend/internal/repository"
	"memoria_backend/internal/util"
)

// Progress 访谈完成度。分母用 catalog.TotalQuestions 常量，
// 题库变形不会让已展示的进度跳变。
type Progress struct {
	TotalQuestions      int      `json:"totalQuestions"`
	AnsweredCount       int      `json:"answeredCount"`
	AnsweredQuestionIDs []string `json:"answeredQuestionIds"`
	PercentComplete     int      `json:"percentComplete"`
}

// ComputeProgress 由回答列表推导进度，纯函数
func ComputeProgress(answers []model.OnboardingAnswer) Progress {
	p := Progress{
		TotalQuestions:      catalog.TotalQuestions,
		AnsweredQuestionIDs: []string{},
	}
	for i := range answers {
		if answers[i].Meaningful() {
			p.AnsweredCount++
			p.AnsweredQuestionIDs = append(p.AnsweredQuestionIDs, answers[i].QuestionID)
		}
	}
	p.PercentComplete = int(math.Round(float64(p.AnsweredCount) / float64(catalog.TotalQuestions) * 100))
	return p
}

// OnboardingService 结构化访谈：提交回答、附件、进度
type OnboardingService struct {
	AnswerRepo  *repository.AnswerRepository
	PersonaRepo *repository.PersonaRepository
	Storage     *StorageService
	Speech      *SpeechService
}

func NewOnboardingService(answerRepo *repository.AnswerRepository, personaRepo *repository.PersonaRepository, storage *StorageService, speech *SpeechService) *OnboardingService {
	return &OnboardingService{
		AnswerRepo:  answerRepo,
		PersonaRepo: personaRepo,
		Storage:     storage,
		Speech:      speech,
	}
}

// SubmitAnswer 校验题目与选项后走合并式 upsert。
// 选项合法性在这里挡住，存储层信任已校验的输入。
func (s *OnboardingService) SubmitAnswer(personaID, questionID string, patch repository.AnswerPatch) (*model.OnboardingAnswer, error) {
	q, ok := catalog.QuestionByID(questionID)
	if !ok {
		return nil, util.ErrQuestionNotFound
	}
	if patch.SelectedOption != nil && *patch.SelectedOption != "" {
		if q.Modality != catalog.ModalitySelect {
			return nil, util.ErrInvalidOption
		}
		valid := false
		for _, opt := range q.Options {
			if opt.Value == *patch.SelectedOption {
				valid = true
				break
			}
		}
		if !valid {
			return nil, util.ErrInvalidOption
		}
	}

	answer, err := s.AnswerRepo.Upsert(personaID, questionID, patch)
	if err != nil {
		return nil, err
	}
	s.refreshStatus(personaID)
	return answer, nil
}

// maxVoiceAnswerSeconds 单条语音回答的时长上限
const maxVoiceAnswerSeconds = 600

// SubmitVoiceAnswer 语音作答：探测音频、转写、入回答并把录音挂为附件
func (s *OnboardingService) SubmitVoiceAnswer(ctx context.Context, personaID, questionID, localAudioPath string) (*model.OnboardingAnswer, error) {
	if _, ok := catalog.QuestionByID(questionID); !ok {
		return nil, util.ErrQuestionNotFound
	}

	info, err := util.GetAudioInfo(localAudioPath)
	if err != nil {
		return nil, err
	}
	if info.Duration > maxVoiceAnswerSeconds {
		return nil, util.ErrAudioTooLong
	}

	transcript, err := s.Speech.Transcribe(localAudioPath)
	if err != nil {
		return nil, err
	}

	if _, err := s.AnswerRepo.Upsert(personaID, questionID, repository.AnswerPatch{VoiceTranscript: &transcript}); err != nil {
		return nil, err
	}

	audioFile, err := os.Open(localAudioPath)
	if err != nil {
		return nil, err
	}
	defer audioFile.Close()

	objectName := mediaObjectName(personaID, model.MediaAudio, filepath.Ext(localAudioPath))
	if _, err := s.Storage.Upload(ctx, objectName, audioFile, info.Size, "audio/mpeg"); err != nil {
		return nil, err
	}

	answer, err := s.AnswerRepo.AddMedia(personaID, questionID, model.MediaAudio, model.MediaItem{
		ID:         model.GenerateUUID(),
		Path:       objectName,
		UploadedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	s.refreshStatus(personaID)
	return answer, nil
}

// AttachMedia 上传附件并挂到回答。音视频先经 ffmpeg 探测，坏文件当场拒绝。
func (s *OnboardingService) AttachMedia(ctx context.Context, personaID, questionID string, kind model.MediaKind, file *multipart.FileHeader) (*model.OnboardingAnswer, error) {
	if _, ok := catalog.QuestionByID(questionID); !ok {
		return nil, util.ErrQuestionNotFound
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var allowed []string
	switch kind {
	case model.MediaPhoto:
		allowed = []string{util.MimeImage}
	case model.MediaAudio:
		if !util.ExtensionAllowed(file.Filename, util.AllowedAudioExtensions) {
			return nil, util.ErrUnsupportedFileType
		}
		allowed = []string{util.MimeAudio, util.MimeVideo, util.MimeOctetStream}
	case model.MediaVideo:
		if !util.ExtensionAllowed(file.Filename, util.AllowedVideoExtensions) {
			return nil, util.ErrUnsupportedFileType
		}
		allowed = []string{util.MimeVideo, util.MimeOctetStream}
	default:
		return nil, util.ErrInvalidMediaKind
	}
	if _, err := util.ValidateMimeType(src, allowed); err != nil {
		return nil, err
	}
	if _, err := src.Seek(0, 0); err != nil {
		return nil, err
	}

	contentType := file.Header.Get("Content-Type")
	objectName := mediaObjectName(personaID, kind, filepath.Ext(file.Filename))
	if _, err := s.Storage.Upload(ctx, objectName, src, file.Size, contentType); err != nil {
		return nil, err
	}

	answer, err := s.AnswerRepo.AddMedia(personaID, questionID, kind, model.MediaItem{
		ID:         model.GenerateUUID(),
		Path:       objectName,
		UploadedAt: time.Now(),
	})
	if err != nil {
		return nil, err
	}
	s.refreshStatus(personaID)
	return answer, nil
}

// RemoveMedia 摘除附件；存储删除失败不回滚记录，残留对象可容忍
func (s *OnboardingService) RemoveMedia(ctx context.Context, personaID, questionID string, kind model.MediaKind, mediaID string) (*model.OnboardingAnswer, error) {
	var path string
	if existing, err := s.AnswerRepo.Get(personaID, questionID); err == nil {
		for _, item := range existing.MediaOf(kind) {
			if item.ID == mediaID {
				path = item.Path
				break
			}
		}
	}

	answer, err := s.AnswerRepo.RemoveMedia(personaID, questionID, kind, mediaID)
	if err != nil {
		return nil, err
	}
	if path != "" {
		s.Storage.Delete(ctx, path)
	}
	s.refreshStatus(personaID)
	return answer, nil
}

// ListAnswers 全部回答
func (s *OnboardingService) ListAnswers(personaID string) ([]model.OnboardingAnswer, error) {
	return s.AnswerRepo.GetForPersona(personaID)
}

// GetProgress 当前进度
func (s *OnboardingService) GetProgress(personaID string) (Progress, error) {
	answers, err := s.AnswerRepo.GetForPersona(personaID)
	if err != nil {
		return Progress{}, err
	}
	return ComputeProgress(answers), nil
}

// refreshStatus 必答题全部有效作答后把人格置为可对话
func (s *OnboardingService) refreshStatus(personaID string) {
	answers, err := s.AnswerRepo.GetForPersona(personaID)
	if err != nil {
		return
	}
	answered := make(map[string]bool, len(answers))
	for i := range answers {
		if answers[i].Meaningful() {
			answered[answers[i].QuestionID] = true
		}
	}
	for _, q := range catalog.Questions() {
		if !q.Optional && !answered[q.ID] {
			return
		}
	}
	if persona, err := s.PersonaRepo.GetByID(personaID); err == nil && persona.Status != model.PersonaReady {
		persona.Status = model.PersonaReady
		s.PersonaRepo.Update(persona)
	}
}

func mediaObjectName(personaID string, kind model.MediaKind, ext string) string {
	return fmt.Sprintf("personas/%s/%s/%s%s", personaID, kind, model.GenerateUUID(), ext)
}
