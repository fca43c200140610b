package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"posterhub/internal/posterhub/config"
	"posterhub/internal/posterhub/ports/services"
	"posterhub/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrBuildOCRRequest = "failed to build vision request"
	ErrAnnotateImage   = "failed to annotate image"
	ErrDecodeOCR       = "failed to decode vision response"
)

// VisionService реализует порт OCRService через Google Vision REST API.
type VisionService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewVisionService создает новый клиент Vision.
func NewVisionService(cfg *config.VisionConfig) services.OCRService {
	return &VisionService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Тело запроса и ответа images:annotate.
type (
	annotateRequest struct {
		Requests []annotateEntry `json:"requests"`
	}

	annotateEntry struct {
		Image    annotateImage     `json:"image"`
		Features []annotateFeature `json:"features"`
	}

	annotateImage struct {
		Source annotateSource `json:"source"`
	}

	annotateSource struct {
		ImageURI string `json:"imageUri"`
	}

	annotateFeature struct {
		Type string `json:"type"`
	}

	annotateResponse struct {
		Responses []annotateResult `json:"responses"`
	}

	annotateResult struct {
		FullTextAnnotation annotateText   `json:"fullTextAnnotation"`
		Error              *annotateError `json:"error"`
	}

	annotateText struct {
		Text string `json:"text"`
	}

	annotateError struct {
		Message string `json:"message"`
	}
)

// ExtractText возвращает текст, распознанный на изображении по URL.
func (s *VisionService) ExtractText(ctx context.Context, imageURL string) (string, error) {
	log := logger.Log(ctx).With(zap.String("service", "vision"), zap.String("method", "ExtractText"))

	reqBody := annotateRequest{
		Requests: []annotateEntry{{
			Image:    annotateImage{Source: annotateSource{ImageURI: imageURL}},
			Features: []annotateFeature{{Type: "TEXT_DETECTION"}},
		}},
	}

	encoded, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrBuildOCRRequest, err)
	}

	url := s.baseURL + "/v1/images:annotate?key=" + s.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrBuildOCRRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error(ctx, ErrAnnotateImage, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrAnnotateImage, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		log.Error(ctx, ErrAnnotateImage, zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%s: status %d", ErrAnnotateImage, resp.StatusCode)
	}

	var decoded annotateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Error(ctx, ErrDecodeOCR, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrDecodeOCR, err)
	}

	if len(decoded.Responses) == 0 {
		return "", nil
	}
	if respErr := decoded.Responses[0].Error; respErr != nil {
		log.Error(ctx, ErrAnnotateImage, zap.String("visionError", respErr.Message))
		return "", fmt.Errorf("%s: %s", ErrAnnotateImage, respErr.Message)
	}

	return decoded.Responses[0].FullTextAnnotation.Text, nil
}
