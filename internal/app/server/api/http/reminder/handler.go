package reminder

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"reminders/internal/app/server/api/http/response"
	"reminders/internal/domain/reminder"
)

// Handler serves one reminders route family, e.g. /reminders backed by the
// "reminders" collection.
type Handler struct {
	service    reminder.Servicer
	name       string
	path       string
	log        *slog.Logger
	middleware huma.Middlewares
}

// NewHandler serves the family at path; name prefixes operation ids.
func NewHandler(service reminder.Servicer, name, path string, log *slog.Logger, mws huma.Middlewares) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		service:    service,
		name:       name,
		path:       path,
		log:        log.With("component", "reminder_handler", "path", path),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.bulkOp(), h.bulk)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	reminders, err := h.service.List(ctx)
	if err != nil {
		return nil, h.failure(http.StatusOK, err)
	}

	return &listOutput{Body: reminders}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*messageOutput, error) {
	err := h.service.Create(ctx, input.Body.toDomain())
	return h.respond(http.StatusCreated, "Created reminder", err)
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*messageOutput, error) {
	err := h.service.Update(ctx, input.Body.toDomain())
	return h.respond(http.StatusOK, "Updated reminder", err)
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*messageOutput, error) {
	err := h.service.Delete(ctx, input.Body.ID)
	return h.respond(http.StatusOK, "Deleted reminder", err)
}

func (h *Handler) bulk(ctx context.Context, input *bulkInput) (*messageOutput, error) {
	reminders := make([]reminder.Reminder, 0, len(input.Body))
	for _, r := range input.Body {
		reminders = append(reminders, r.toDomain())
	}

	err := h.service.Replace(ctx, reminders)
	return h.respond(http.StatusOK, "Updated reminder", err)
}

func (h *Handler) respond(status int, message string, err error) (*messageOutput, error) {
	if err != nil {
		return nil, h.failure(status, err)
	}

	return &messageOutput{
		Status: status,
		Body:   *response.New(message),
	}, nil
}

// failure turns a service error into the envelope. Validation errors get
// 400; store errors keep the status of the success path and are only
// distinguishable by their message.
func (h *Handler) failure(status int, err error) error {
	if reminder.IsValidation(err) {
		return response.New(err.Error()).WithStatus(http.StatusBadRequest)
	}

	h.log.Error("store call failed", "error", err)
	return response.New(err.Error()).WithStatus(status)
}
