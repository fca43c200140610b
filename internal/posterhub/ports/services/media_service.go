// Package services определяет порты внешних сервисов.
package services

import "context"

// MediaService - порт внешнего хостинга изображений: загрузка с получением
// постоянного URL. Внутренности сервиса этой системе неизвестны.
type MediaService interface {
	// Upload загружает изображение и возвращает URL размещенной копии.
	Upload(ctx context.Context, data []byte, name string) (string, error)
}
