package services

import "context"

// OCRService - порт внешнего сервиса распознавания текста на изображениях.
type OCRService interface {
	// ExtractText возвращает текст, распознанный на изображении по URL.
	ExtractText(ctx context.Context, imageURL string) (string, error)
}
