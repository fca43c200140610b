// Package services содержит клиентов внешних сервисов.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"posterhub/internal/posterhub/config"
	"posterhub/internal/posterhub/ports/services"
	"posterhub/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrBuildUploadRequest = "failed to build imgur upload request"
	ErrUploadImage        = "failed to upload image to imgur"
	ErrDecodeUpload       = "failed to decode imgur response"
	ErrUploadRejected     = "imgur rejected the upload"
)

// ImgurService реализует порт MediaService через Imgur API.
type ImgurService struct {
	baseURL  string
	clientID string
	client   *http.Client
}

// NewImgurService создает новый клиент Imgur.
func NewImgurService(cfg *config.ImgurConfig) services.MediaService {
	return &ImgurService{
		baseURL:  cfg.BaseURL,
		clientID: cfg.ClientID,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

// imgurResponse - ответ Imgur на загрузку изображения.
type imgurResponse struct {
	Data struct {
		Link string `json:"link"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// Upload загружает изображение и возвращает URL размещенной копии.
func (s *ImgurService) Upload(ctx context.Context, data []byte, name string) (string, error) {
	log := logger.Log(ctx).With(zap.String("service", "imgur"), zap.String("method", "Upload"))

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrBuildUploadRequest, err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("%s: %w", ErrBuildUploadRequest, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("%s: %w", ErrBuildUploadRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/3/image", &body)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrBuildUploadRequest, err)
	}
	req.Header.Set("Authorization", "Client-ID "+s.clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		log.Error(ctx, ErrUploadImage, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrUploadImage, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	var decoded imgurResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		log.Error(ctx, ErrDecodeUpload, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrDecodeUpload, err)
	}

	if resp.StatusCode != http.StatusOK || !decoded.Success {
		log.Error(ctx, ErrUploadRejected, zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%s: status %d", ErrUploadRejected, resp.StatusCode)
	}

	log.Debug(ctx, "image uploaded", zap.String("link", decoded.Data.Link))
	return decoded.Data.Link, nil
}
