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

type MemberHandler struct {
	members *service.MemberService
	logger  *slog.Logger
}

func NewMemberHandler(members *service.MemberService, logger *slog.Logger) *MemberHandler {
	return &MemberHandler{
		members: members,
		logger:  logger,
	}
}

func (h *MemberHandler) RegisterProtected(app fiber.Router) {
	members := app.Group("/workspaces/:workspaceId/members")
	members.Get("/", h.List)
	members.Post("/", h.Add)
	members.Get("/me", h.Me)
	members.Patch("/:memberId", h.ChangeRole)
	members.Delete("/:memberId", h.Remove)
}

// Me godoc
// @Summary Get the caller's own membership
// @Tags members
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/members/me [get]
func (h *MemberHandler) Me(c *fiber.Ctx) error {
	user, member, err := membershipOf(c, h.members, c.Params("workspaceId"))
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, ToMemberResponse(&domain.MemberWithUser{Member: *member, Name: user.Name, Email: user.Email}))
}

// List godoc
// @Summary List workspace members
// @Tags members
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspaceId}/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	if _, _, err := membershipOf(c, h.members, workspaceID); err != nil {
		return HandleDomainError(c, err)
	}

	members, err := h.members.List(c.Context(), workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	responses := make([]MemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, ToMemberResponse(&members[i]))
	}
	return response.OK(c, responses)
}

type addMemberRequest struct {
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	ProjectID *string     `json:"projectId"`
}

// Add godoc
// @Summary Add a member by email
// @Tags members
// @Accept json
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param member body addMemberRequest true "Member"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/members [post]
func (h *MemberHandler) Add(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	user, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Can(member.Role, authz.ActionManageMembers) {
		return response.Forbidden(c, "managing members requires a privileged role")
	}

	var req addMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	created, err := h.members.AddByEmail(c.Context(), user, workspaceID, req.Email, req.Role, req.ProjectID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, ToMemberResponse(&domain.MemberWithUser{Member: *created}))
}

type changeRoleRequest struct {
	Role      domain.Role `json:"role"`
	ProjectID *string     `json:"projectId"`
}

// ChangeRole godoc
// @Summary Change a member's role
// @Tags members
// @Accept json
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param memberId path string true "Member ID"
// @Param role body changeRoleRequest true "New role"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/members/{memberId} [patch]
func (h *MemberHandler) ChangeRole(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	user, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	var req changeRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	updated, err := h.members.ChangeRole(c.Context(), user, member.Role, workspaceID, c.Params("memberId"), req.Role, req.ProjectID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.OK(c, ToMemberResponse(&domain.MemberWithUser{Member: *updated}))
}

// Remove godoc
// @Summary Remove a member
// @Description Revokes the membership and invalidates the removed user's sessions.
// @Tags members
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param memberId path string true "Member ID"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/members/{memberId} [delete]
func (h *MemberHandler) Remove(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	user, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	if err := h.members.Remove(c.Context(), user, member.Role, workspaceID, c.Params("memberId")); err != nil {
		return HandleDomainError(c, err)
	}

	return response.NoContent(c)
}

type MemberResponse struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	WorkspaceID string      `json:"workspaceId"`
	Role        domain.Role `json:"role"`
	ProjectID   *string     `json:"projectId,omitempty"`
	Name        string      `json:"name,omitempty"`
	Email       string      `json:"email,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func ToMemberResponse(member *domain.MemberWithUser) MemberResponse {
	return MemberResponse{
		ID:          member.ID,
		UserID:      member.UserID,
		WorkspaceID: member.WorkspaceID,
		Role:        member.Role,
		ProjectID:   member.ProjectID,
		Name:        member.Name,
		Email:       member.Email,
		CreatedAt:   member.CreatedAt,
	}
}
