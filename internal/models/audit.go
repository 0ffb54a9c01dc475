package models

import "time"

// AuditRecord represents one request_log row: a full request/response
// exchange captured by the audit middleware.
type AuditRecord struct {
	ID           int       `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Method       string    `json:"method"` // lowercased HTTP method
	Path         string    `json:"path"`
	RequestBody  string    `json:"request_body"`
	ResponseBody string    `json:"response_body"`
	StatusCode   int       `json:"response_status_code"`
}
