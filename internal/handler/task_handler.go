package handler

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/backend/internal/authz"
	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/response"
	"github.com/taskforge/backend/internal/service"
)

type TaskHandler struct {
	tasks   *service.TaskService
	members *service.MemberService
	logger  *slog.Logger
}

func NewTaskHandler(tasks *service.TaskService, members *service.MemberService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:   tasks,
		members: members,
		logger:  logger,
	}
}

func (h *TaskHandler) RegisterProtected(app fiber.Router) {
	tasks := app.Group("/workspaces/:workspaceId/tasks")
	tasks.Post("/", h.Create)
	tasks.Get("/", h.List)
	tasks.Get("/:taskId", h.Get)
	tasks.Patch("/:taskId", h.Update)
	tasks.Delete("/:taskId", h.Delete)
}

type createTaskRequest struct {
	Summary      string            `json:"summary"`
	Status       domain.TaskStatus `json:"status"`
	IssueID      string            `json:"issueId"`
	ProjectID    *string           `json:"projectId"`
	AssigneeID   *string           `json:"assigneeId"`
	ParentTaskID *string           `json:"parentTaskId"`
	DueDate      *time.Time        `json:"dueDate"`
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param task body createTaskRequest true "Task"
// @Success 201 {object} response.Envelope
// @Router /workspaces/{workspaceId}/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	_, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	if member.Role == domain.RoleClient {
		return response.Forbidden(c, "clients cannot create tasks")
	}

	var req createTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	task, err := h.tasks.Create(c.Context(), domain.CreateTaskInput{
		Summary:      req.Summary,
		Status:       req.Status,
		IssueID:      req.IssueID,
		ProjectID:    req.ProjectID,
		WorkspaceID:  &workspaceID,
		AssigneeID:   req.AssigneeID,
		ParentTaskID: req.ParentTaskID,
		DueDate:      req.DueDate,
	})
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, ToTaskResponse(task))
}

// List godoc
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param projectId query string false "Filter by project"
// @Param assigneeId query string false "Filter by assignee"
// @Param status query string false "Filter by status"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspaceId}/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	_, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	filter := domain.TaskFilter{Limit: c.QueryInt("limit")}
	if projectID := c.Query("projectId"); projectID != "" {
		filter.ProjectID = &projectID
	}
	if assigneeID := c.Query("assigneeId"); assigneeID != "" {
		filter.AssigneeID = &assigneeID
	}
	if raw := c.Query("status"); raw != "" {
		status := domain.TaskStatus(raw)
		if !status.Valid() {
			return response.BadRequest(c, "unknown status "+raw)
		}
		filter.Status = &status
	}

	tasks, err := h.tasks.List(c.Context(), member.Role, member.ProjectID, workspaceID, filter)
	if err != nil {
		return HandleDomainError(c, err)
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, ToTaskResponse(&tasks[i]))
	}
	return response.OK(c, responses)
}

// Get godoc
// @Summary Get one task
// @Tags tasks
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspaceId}/tasks/{taskId} [get]
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	_, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	task, err := h.tasks.Get(c.Context(), member.Role, member.ProjectID, workspaceID, c.Params("taskId"))
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, ToTaskResponse(task))
}

type updateTaskRequest struct {
	Summary    *string            `json:"summary"`
	Status     *domain.TaskStatus `json:"status"`
	ProjectID  *string            `json:"projectId"`
	AssigneeID *string            `json:"assigneeId"`
	DueDate    *time.Time         `json:"dueDate"`
}

// Update godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Param task body updateTaskRequest true "Fields"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspaceId}/tasks/{taskId} [patch]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	_, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	if member.Role == domain.RoleClient {
		return response.Forbidden(c, "clients cannot update tasks")
	}

	var req updateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	task, err := h.tasks.Update(c.Context(), workspaceID, c.Params("taskId"), domain.UpdateTaskInput{
		Summary:    req.Summary,
		Status:     req.Status,
		ProjectID:  req.ProjectID,
		AssigneeID: req.AssigneeID,
		DueDate:    req.DueDate,
	})
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, ToTaskResponse(task))
}

// Delete godoc
// @Summary Delete a task and its subtasks
// @Description Restricted to ADMIN. The activity log records the task before deletion.
// @Tags tasks
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param taskId path string true "Task ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/tasks/{taskId} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	user, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Can(member.Role, authz.ActionDeleteTask) {
		return response.Forbidden(c, MsgAdminOnly)
	}

	if err := h.tasks.Delete(c.Context(), user, workspaceID, c.Params("taskId")); err != nil {
		return HandleDomainError(c, err)
	}
	return response.NoContent(c)
}

type TaskResponse struct {
	ID           string            `json:"id"`
	Summary      string            `json:"summary"`
	Status       domain.TaskStatus `json:"status"`
	IssueID      string            `json:"issueId"`
	ProjectID    *string           `json:"projectId,omitempty"`
	WorkspaceID  *string           `json:"workspaceId,omitempty"`
	AssigneeID   *string           `json:"assigneeId,omitempty"`
	ParentTaskID *string           `json:"parentTaskId,omitempty"`
	DueDate      *time.Time        `json:"dueDate,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		Summary:      task.Summary,
		Status:       task.Status,
		IssueID:      task.IssueID,
		ProjectID:    task.ProjectID,
		WorkspaceID:  task.WorkspaceID,
		AssigneeID:   task.AssigneeID,
		ParentTaskID: task.ParentTaskID,
		DueDate:      task.DueDate,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
}
