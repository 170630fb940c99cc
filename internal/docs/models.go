package docs

import (
	"time"
)

// User represents an account visible through the API
// @Description User profile
type User struct {
	ID          string   `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string   `json:"name" example:"Jordan Blake"`
	Email       string   `json:"email" example:"jordan@example.com"`
	Designation string   `json:"designation,omitempty" example:"Engineer"`
	Department  string   `json:"department,omitempty" example:"Platform"`
	Skills      []string `json:"skills,omitempty" example:"go,postgres"`
}

// Member represents a user's membership in a workspace
// @Description Workspace membership with its role
type Member struct {
	ID          string  `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID      string  `json:"userId" example:"550e8400-e29b-41d4-a716-446655440000"`
	WorkspaceID string  `json:"workspaceId" example:"550e8400-e29b-41d4-a716-446655440000"`
	Role        string  `json:"role" example:"EMPLOYEE" enums:"ADMIN,PROJECT_MANAGER,MANAGEMENT,EMPLOYEE,CLIENT"`
	ProjectID   *string `json:"projectId,omitempty"`
}

// Task represents a unit of work inside a project
// @Description Task with optional subtask parent
type Task struct {
	ID           string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Summary      string     `json:"summary" example:"Fix login redirect"`
	Status       string     `json:"status" example:"IN_PROGRESS" enums:"TODO,IN_PROGRESS,IN_REVIEW,DONE"`
	IssueID      string     `json:"issueId,omitempty" example:"TF-142"`
	ProjectID    *string    `json:"projectId,omitempty"`
	AssigneeID   *string    `json:"assigneeId,omitempty"`
	ParentTaskID *string    `json:"parentTaskId,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ImportResult represents the outcome of a bulk profile upload
// @Description Per-row outcome of a CSV or XLSX import
type ImportResult struct {
	Created int        `json:"created" example:"7"`
	Failed  int        `json:"failed" example:"2"`
	Errors  []RowError `json:"errors,omitempty"`
}

// RowError points at one rejected import row
// @Description One rejected row and the reason
type RowError struct {
	Line    int    `json:"line" example:"4"`
	Name    string `json:"name,omitempty" example:"Jordan Blake"`
	Message string `json:"message" example:"email already exists"`
}

// Envelope represents the uniform response body of the API
// @Description Standard response envelope
type Envelope struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty" example:"resource not found"`
	Details interface{} `json:"details,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta represents response metadata
// @Description Response metadata
type Meta struct {
	TraceID string `json:"traceId,omitempty" example:"abc123"`
}
