package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/backend/internal/domain"
	"github.com/taskforge/backend/internal/response"
	"github.com/taskforge/backend/internal/service"
)

type WorkspaceHandler struct {
	workspaces *service.WorkspaceService
	members    *service.MemberService
	logger     *slog.Logger
}

func NewWorkspaceHandler(workspaces *service.WorkspaceService, members *service.MemberService, logger *slog.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaces: workspaces,
		members:    members,
		logger:     logger,
	}
}

func (h *WorkspaceHandler) RegisterProtected(app fiber.Router) {
	workspaces := app.Group("/workspaces")
	workspaces.Post("/", h.Create)
	workspaces.Get("/", h.List)
	workspaces.Get("/:workspaceId", h.Get)
}

// membershipOf resolves the caller's membership in the workspace. Roles are
// workspace-scoped; membership elsewhere grants nothing here, so an unknown
// membership maps to ErrForbidden rather than ErrNotFound.
func membershipOf(c *fiber.Ctx, members *service.MemberService, workspaceID string) (*domain.User, *domain.Member, error) {
	user := GetUserFromContext(c)
	if user == nil {
		return nil, nil, domain.ErrUnauthorized
	}
	if workspaceID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	member, err := members.RoleIn(c.Context(), user.ID, workspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrForbidden
		}
		return nil, nil, err
	}

	return user, member, nil
}

type createWorkspaceRequest struct {
	Name string `json:"name"`
}

// Create godoc
// @Summary Create a workspace
// @Tags workspaces
// @Accept json
// @Produce json
// @Param workspace body createWorkspaceRequest true "Workspace"
// @Success 201 {object} response.Envelope
// @Router /workspaces [post]
func (h *WorkspaceHandler) Create(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	var req createWorkspaceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	workspace, err := h.workspaces.Create(c.Context(), user, req.Name)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, ToWorkspaceResponse(workspace))
}

// List godoc
// @Summary List the caller's workspaces
// @Tags workspaces
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workspaces [get]
func (h *WorkspaceHandler) List(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	workspaces, err := h.workspaces.ListForUser(c.Context(), user.ID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	responses := make([]WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		responses = append(responses, ToWorkspaceResponse(&workspaces[i]))
	}
	return response.OK(c, responses)
}

// Get godoc
// @Summary Get one workspace
// @Tags workspaces
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId} [get]
func (h *WorkspaceHandler) Get(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	if _, _, err := membershipOf(c, h.members, workspaceID); err != nil {
		return HandleDomainError(c, err)
	}

	workspace, err := h.workspaces.Get(c.Context(), workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, ToWorkspaceResponse(workspace))
}

type WorkspaceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToWorkspaceResponse(workspace *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:        workspace.ID,
		Name:      workspace.Name,
		CreatedAt: workspace.CreatedAt,
	}
}
