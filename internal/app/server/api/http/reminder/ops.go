package reminder

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: h.name + "-list",
		Method:      http.MethodGet,
		Path:        h.path,
		Summary:     "List reminders",
		Tags:        []string{h.name},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) createOp() huma.Operation {
	return huma.Operation{
		OperationID:   h.name + "-create",
		Method:        http.MethodPost,
		Path:          h.path,
		Summary:       "Create a reminder",
		Description:   "The store assigns the id; the body must not carry one.",
		Tags:          []string{h.name},
		DefaultStatus: http.StatusCreated,
		Security:      []map[string][]string{{"bearer": {}}},
		Middlewares:   h.middleware,
	}
}

func (h *Handler) updateOp() huma.Operation {
	return huma.Operation{
		OperationID: h.name + "-update",
		Method:      http.MethodPut,
		Path:        h.path,
		Summary:     "Replace a reminder",
		Description: "The id travels in the body and is required.",
		Tags:        []string{h.name},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: h.name + "-delete",
		Method:      http.MethodDelete,
		Path:        h.path,
		Summary:     "Delete a reminder",
		Description: "The body carries only the id of the reminder.",
		Tags:        []string{h.name},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}

func (h *Handler) bulkOp() huma.Operation {
	return huma.Operation{
		OperationID: h.name + "-bulk",
		Method:      http.MethodPatch,
		Path:        h.path,
		Summary:     "Overwrite the collection",
		Description: "Rejected as a whole when more than one reminder lacks an id.",
		Tags:        []string{h.name},
		Security:    []map[string][]string{{"bearer": {}}},
		Middlewares: h.middleware,
	}
}
