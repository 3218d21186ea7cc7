package health

import "reminders/internal/app/server/api/http/response"

// Output represents the output for health check endpoint
type Output struct {
	Body response.Message
}
