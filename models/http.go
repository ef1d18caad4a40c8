package models

// Pagination describes the window of a list response: the requested page
// and page size, the total number of records matching the filter, and the
// resulting page count (ceil(total/per_page)).
type Pagination struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// ListUsersResponse is the body of GET /users.
type ListUsersResponse struct {
	Users      []User     `json:"users"`
	Pagination Pagination `json:"pagination"`
}

// ErrorResponse is the body of every non-2xx response.
// Internal failure details never appear here; the message is the
// user-facing text only.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of responses that confirm an action without
// echoing a record, e.g. DELETE /users/{id}.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}
