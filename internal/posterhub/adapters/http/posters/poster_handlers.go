// Package posters содержит HTTP-обработчики для управления афишами.
package posters

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"posterhub/internal/posterhub/adapters/http/middleware"
	"posterhub/internal/posterhub/adapters/http/respond"
	"posterhub/internal/posterhub/app"
	"posterhub/internal/posterhub/app/dto"
	"posterhub/internal/posterhub/domain/entities"
	"posterhub/internal/posterhub/domain/responses"
	"posterhub/internal/posterhub/ports/services"
	"posterhub/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreatePoster = "handling create poster request"
	LogHandlerGetPoster    = "handling get poster request"
	LogHandlerListPosters  = "handling list posters request"
	LogHandlerUpdatePoster = "handling update poster request"
	LogHandlerDeletePoster = "handling delete poster request"
	LogHandlerOCR          = "handling ocr request"

	ErrMsgInvalidPosterID    = "invalid poster id"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgMissingTerm        = "missing term parameter"
	ErrMsgMissingField       = "missing field parameter"
	ErrMsgUploadFailed       = "failed to upload poster image"
	ErrMsgOCRFailed          = "failed to extract text from image"
)

// HeaderIdempotencyKey - заголовок с токеном идемпотентности создания.
const HeaderIdempotencyKey = "Idempotency-Key"

// Handler обработчик HTTP-запросов для работы с афишами.
type Handler struct {
	posterUseCase *app.PosterUseCase
	media         services.MediaService
	ocr           services.OCRService
}

// NewHandler создает новый экземпляр обработчика афиш.
func NewHandler(posterUseCase *app.PosterUseCase, media services.MediaService, ocr services.OCRService) *Handler {
	return &Handler{
		posterUseCase: posterUseCase,
		media:         media,
		ocr:           ocr,
	}
}

// CreatePoster обрабатывает запрос на создание афиши. Поддерживаются два
// формата тела: multipart (файл изображения загружается во внешний хостинг)
// и JSON с готовым URL контента. Заголовок Idempotency-Key делает повтор
// запроса безопасным.
func (h *Handler) CreatePoster(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreatePoster"))
	log.Debug(requestCtx, LogHandlerCreatePoster)

	var poster *entities.Poster

	if strings.HasPrefix(ctx.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		built, errMsg := h.posterFromMultipart(ctx)
		if errMsg != "" {
			log.Error(requestCtx, errMsg)
			return respond.BadRequest(ctx, errMsg)
		}
		poster = built
	} else {
		var req dto.PosterRequest
		if err := ctx.Bind().Body(&req); err != nil {
			log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
			return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
		}
		poster = req.ToEntity()
	}

	env := h.posterUseCase.CreatePoster(requestCtx, poster, ctx.Get(HeaderIdempotencyKey))
	return respond.Envelope(ctx, env, fiber.StatusCreated)
}

// GetPoster обрабатывает запрос на получение афиши по ID.
func (h *Handler) GetPoster(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetPoster"))
	log.Debug(requestCtx, LogHandlerGetPoster)

	posterID := ctx.Params("poster_id")
	if posterID == "" {
		log.Error(requestCtx, ErrMsgInvalidPosterID)
		return respond.BadRequest(ctx, ErrMsgInvalidPosterID)
	}

	env := h.posterUseCase.GetPosterByID(requestCtx, posterID)
	return respond.Envelope(ctx, env, 0)
}

// ListPosters возвращает все афиши с опциональной сортировкой (?sort=).
func (h *Handler) ListPosters(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListPosters"))
	log.Debug(requestCtx, LogHandlerListPosters)

	env := h.posterUseCase.GetAllPosters(requestCtx, ctx.Query("sort"))
	return respond.Envelope(ctx, env, 0)
}

// PostersByTag возвращает афиши по тегу или списку тегов через запятую
// (все перечисленные теги должны присутствовать).
func (h *Handler) PostersByTag(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.PostersByTag"))
	log.Debug(requestCtx, LogHandlerListPosters)

	tags := splitList(ctx.Params("tag"))
	if len(tags) == 0 {
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	var env responses.Envelope[[]*entities.Poster]
	if len(tags) == 1 {
		env = h.posterUseCase.SearchByTag(requestCtx, tags[0])
	} else {
		env = h.posterUseCase.SearchByMultipleTags(requestCtx, tags)
	}
	return respond.Envelope(ctx, env, 0)
}

// PostersByOrganization возвращает афиши запрошенной организации.
func (h *Handler) PostersByOrganization(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.PostersByOrganization"))
	log.Debug(requestCtx, LogHandlerListPosters)

	env := h.posterUseCase.SearchByOrganization(requestCtx, ctx.Params("org"))
	return respond.Envelope(ctx, env, 0)
}

// PostersByTerm выполняет поиск по подстроке (?term=) с опциональным
// сужением по тегам (?tags=a,b) и сортировкой (?sort=).
func (h *Handler) PostersByTerm(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.PostersByTerm"))
	log.Debug(requestCtx, LogHandlerListPosters)

	term := ctx.Query("term")
	if term == "" {
		log.Error(requestCtx, ErrMsgMissingTerm)
		return respond.BadRequest(ctx, ErrMsgMissingTerm)
	}

	env := h.posterUseCase.SearchByTerm(requestCtx, term, splitList(ctx.Query("tags")), ctx.Query("sort"))
	return respond.Envelope(ctx, env, 0)
}

// DistinctValues возвращает уникальные значения поля (?field=).
func (h *Handler) DistinctValues(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DistinctValues"))
	log.Debug(requestCtx, LogHandlerListPosters)

	field := ctx.Query("field")
	if field == "" {
		log.Error(requestCtx, ErrMsgMissingField)
		return respond.BadRequest(ctx, ErrMsgMissingField)
	}

	env := h.posterUseCase.DistinctValues(requestCtx, field)
	return respond.Envelope(ctx, env, 0)
}

// UpdatePoster обрабатывает запрос на обновление афиши.
func (h *Handler) UpdatePoster(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdatePoster"))
	log.Debug(requestCtx, LogHandlerUpdatePoster)

	posterID := ctx.Params("poster_id")
	if posterID == "" {
		log.Error(requestCtx, ErrMsgInvalidPosterID)
		return respond.BadRequest(ctx, ErrMsgInvalidPosterID)
	}

	var req dto.PosterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	env := h.posterUseCase.UpdatePoster(requestCtx, posterID, req.ToEntity())
	return respond.Envelope(ctx, env, 0)
}

// DeletePoster обрабатывает запрос на удаление афиши.
func (h *Handler) DeletePoster(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeletePoster"))
	log.Debug(requestCtx, LogHandlerDeletePoster)

	posterID := ctx.Params("poster_id")
	if posterID == "" {
		log.Error(requestCtx, ErrMsgInvalidPosterID)
		return respond.BadRequest(ctx, ErrMsgInvalidPosterID)
	}

	env := h.posterUseCase.DeletePosterByID(requestCtx, posterID)
	return respond.Envelope(ctx, env, 0)
}

// ExtractText распознает текст на изображении по URL.
func (h *Handler) ExtractText(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ExtractText"))
	log.Debug(requestCtx, LogHandlerOCR)

	var req dto.OCRRequest
	if err := ctx.Bind().Body(&req); err != nil || req.ImageURL == "" {
		log.Error(requestCtx, ErrMsgInvalidRequestBody)
		return respond.BadRequest(ctx, ErrMsgInvalidRequestBody)
	}

	text, err := h.ocr.ExtractText(requestCtx, req.ImageURL)
	if err != nil {
		log.Error(requestCtx, ErrMsgOCRFailed, zap.Error(err))
		env := responses.Fail[*dto.OCRResponse](responses.KindInternal, ErrMsgOCRFailed)
		return respond.Envelope(ctx, env, 0)
	}

	env := responses.OK(&dto.OCRResponse{Text: text}, "extracted")
	return respond.Envelope(ctx, env, 0)
}

// posterFromMultipart собирает афишу из multipart-формы, загружая файл
// изображения во внешний хостинг. Пустая вторая компонента результата
// означает успех.
func (h *Handler) posterFromMultipart(ctx fiber.Ctx) (*entities.Poster, string) {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.posterFromMultipart"))

	fileHeader, err := ctx.FormFile("content")
	if err != nil {
		return nil, ErrMsgInvalidRequestBody
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, ErrMsgInvalidRequestBody
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrMsgInvalidRequestBody
	}

	contentURL, err := h.media.Upload(requestCtx, data, fileHeader.Filename)
	if err != nil {
		log.Error(requestCtx, ErrMsgUploadFailed, zap.Error(err))
		return nil, ErrMsgUploadFailed
	}

	poster := entities.NewPoster(
		ctx.FormValue("title"),
		contentURL,
		ctx.FormValue("description"),
		splitList(ctx.FormValue("tags")),
		ctx.FormValue("organization"),
	)

	if isRecurring, err := strconv.ParseBool(ctx.FormValue("isRecurring", "false")); err == nil {
		poster.IsRecurring = isRecurring
	}
	poster.StartDate = parseTime(ctx.FormValue("startDate"))
	poster.EndDate = parseTime(ctx.FormValue("endDate"))

	return poster, ""
}

// splitList разбирает список значений через запятую, отбрасывая пустые.
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseTime разбирает время в формате RFC3339 или возвращает nil.
func parseTime(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &parsed
}
