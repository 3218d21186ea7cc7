package reminder

import (
	"reminders/internal/app/server/api/http/response"
	"reminders/internal/domain/reminder"
)

// Unknown fields are ignored, so a record read from the list can be sent
// back as is.
type request struct {
	_        struct{} `json:"-" additionalProperties:"true"`
	ID       string   `json:"id,omitempty" doc:"Store-assigned id; required for updates, forbidden for creation"`
	Title    string   `json:"title" example:"Walk the dog"`
	Due      uint64   `json:"due" example:"1718000000" doc:"Unix timestamp"`
	Priority uint64   `json:"priority,omitempty" example:"1"`
	Assignee *string  `json:"assignee,omitempty" nullable:"true" example:"sam"`
}

func (r request) toDomain() reminder.Reminder {
	return reminder.Reminder{
		ID:       r.ID,
		Title:    r.Title,
		Due:      r.Due,
		Priority: r.Priority,
		Assignee: r.Assignee,
	}
}

type deleteRequest struct {
	_  struct{} `json:"-" additionalProperties:"true"`
	ID string   `json:"id,omitempty" doc:"Id of the reminder to delete"`
}

type listOutput struct {
	Body []reminder.Reminder
}

type createInput struct {
	Body request
}

type updateInput struct {
	Body request
}

type deleteInput struct {
	Body deleteRequest
}

type bulkInput struct {
	Body []request
}

type messageOutput struct {
	Status int
	Body   response.Message
}
