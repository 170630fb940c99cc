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

type ProjectHandler struct {
	projects *service.ProjectService
	members  *service.MemberService
	logger   *slog.Logger
}

func NewProjectHandler(projects *service.ProjectService, members *service.MemberService, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		members:  members,
		logger:   logger,
	}
}

func (h *ProjectHandler) RegisterProtected(app fiber.Router) {
	projects := app.Group("/workspaces/:workspaceId/projects")
	projects.Post("/", h.Create)
	projects.Get("/", h.List)
	projects.Get("/:projectId", h.Get)
	projects.Patch("/:projectId", h.Update)
	projects.Delete("/:projectId", h.Delete)
	projects.Post("/bulk-delete", h.BulkDelete)
	projects.Get("/:projectId/analytics", h.Analytics)
}

type createProjectRequest struct {
	Name             string     `json:"name"`
	ImageURL         string     `json:"imageUrl"`
	PostDate         *time.Time `json:"postDate"`
	TentativeEndDate *time.Time `json:"tentativeEndDate"`
	Assignees        []string   `json:"assignees"`
}

// Create godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param project body createProjectRequest true "Project"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/projects [post]
func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	_, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Can(member.Role, authz.ActionCreateProject) {
		return response.Forbidden(c, "creating projects requires a privileged role")
	}

	var req createProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	input := domain.CreateProjectInput{
		Name:        req.Name,
		WorkspaceID: &workspaceID,
		ImageURL:    req.ImageURL,
		Assignees:   req.Assignees,
	}
	if req.PostDate != nil {
		input.PostDate = *req.PostDate
	}
	if req.TentativeEndDate != nil {
		input.TentativeEndDate = *req.TentativeEndDate
	}

	project, err := h.projects.Create(c.Context(), input)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, ToProjectResponse(project))
}

// List godoc
// @Summary List projects visible to the caller
// @Tags projects
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspaceId}/projects [get]
func (h *ProjectHandler) List(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	user, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	projects, err := h.projects.List(c.Context(), member.Role, member.ProjectID, user.ID, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	responses := make([]ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, ToProjectResponse(&projects[i]))
	}
	return response.OK(c, responses)
}

// Get godoc
// @Summary Get one project
// @Tags projects
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/projects/{projectId} [get]
func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	_, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	project, err := h.projects.Get(c.Context(), member.Role, member.ProjectID, workspaceID, c.Params("projectId"))
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, ToProjectResponse(project))
}

type updateProjectRequest struct {
	Name      *string  `json:"name"`
	ImageURL  *string  `json:"imageUrl"`
	Assignees []string `json:"assignees"`
}

// Update godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Param project body updateProjectRequest true "Fields"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspaceId}/projects/{projectId} [patch]
func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	_, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Can(member.Role, authz.ActionCreateProject) {
		return response.Forbidden(c, "updating projects requires a privileged role")
	}

	var req updateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	project, err := h.projects.Update(c.Context(), workspaceID, c.Params("projectId"), domain.UpdateProjectInput{
		Name:      req.Name,
		ImageURL:  req.ImageURL,
		Assignees: req.Assignees,
	})
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, ToProjectResponse(project))
}

// Delete godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/projects/{projectId} [delete]
func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	user, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Can(member.Role, authz.ActionDeleteProject) {
		return response.Forbidden(c, "deleting projects requires a privileged role")
	}

	if err := h.projects.Delete(c.Context(), user, workspaceID, c.Params("projectId")); err != nil {
		return HandleDomainError(c, err)
	}
	return response.NoContent(c)
}

type bulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

// BulkDelete godoc
// @Summary Delete several projects at once
// @Tags projects
// @Accept json
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param ids body bulkDeleteRequest true "Project IDs"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/projects/bulk-delete [post]
func (h *ProjectHandler) BulkDelete(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	user, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Can(member.Role, authz.ActionDeleteProject) {
		return response.Forbidden(c, "deleting projects requires a privileged role")
	}

	var req bulkDeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if len(req.IDs) == 0 {
		return response.BadRequest(c, "ids is required")
	}

	count, err := h.projects.BulkDelete(c.Context(), user, workspaceID, req.IDs)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, map[string]int64{"deleted": count})
}

// Analytics godoc
// @Summary Monthly task analytics for a project
// @Tags projects
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param projectId path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspaceId}/projects/{projectId}/analytics [get]
func (h *ProjectHandler) Analytics(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	user, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	analytics, err := h.projects.Analytics(c.Context(), member.Role, member.ProjectID, workspaceID, c.Params("projectId"), user.ID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, analytics)
}

type ProjectResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	WorkspaceID      *string   `json:"workspaceId,omitempty"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	PostDate         time.Time `json:"postDate"`
	TentativeEndDate time.Time `json:"tentativeEndDate"`
	Assignees        []string  `json:"assignees,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ToProjectResponse(project *domain.Project) ProjectResponse {
	return ProjectResponse{
		ID:               project.ID,
		Name:             project.Name,
		WorkspaceID:      project.WorkspaceID,
		ImageURL:         project.ImageURL,
		PostDate:         project.PostDate,
		TentativeEndDate: project.TentativeEndDate,
		Assignees:        project.Assignees,
		CreatedAt:        project.CreatedAt,
		UpdatedAt:        project.UpdatedAt,
	}
}
