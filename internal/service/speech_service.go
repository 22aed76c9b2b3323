package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"memoria_backend/internal/config"
)

// SpeechService 语音合成（TTS）与语音转写（STT）客户端。
// 合成只在门禁放行后被调用；转写用于语音优先的访谈回答。
type SpeechService struct {
	config  config.SpeechConfig
	storage *StorageService
	client  *http.Client
}

func NewSpeechService(cfg config.SpeechConfig, storage *StorageService) *SpeechService {
	return &SpeechService{
		config:  cfg,
		storage: storage,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Synthesize 把人格回复合成为音频并上传到存储，返回可访问的 URL
func (s *SpeechService) Synthesize(text, voiceID, objectName string) (string, error) {
	voice := voiceID
	if voice == "" {
		voice = s.config.DefaultVoice
	}

	reqBody := map[string]interface{}{
		"model": s.config.TTSModel,
		"voice": voice,
		"input": text,
	}
	jsonData, _ := json.Marshal(reqBody)

	req, err := http.NewRequest("POST", s.config.BaseURL+"/audio/speech", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("TTS API error (status %d): %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return s.storage.Upload(req.Context(), objectName, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg")
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe 把本地音频文件转写为文本
func (s *SpeechService) Transcribe(audioPath string) (string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	writer.WriteField("model", s.config.STTModel)
	writer.Close()

	req, err := http.NewRequest("POST", s.config.BaseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("STT API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	return result.Text, nil
}
