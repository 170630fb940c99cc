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

type InvitationHandler struct {
	invitations *service.InvitationService
	members     *service.MemberService
	logger      *slog.Logger
}

func NewInvitationHandler(invitations *service.InvitationService, members *service.MemberService, logger *slog.Logger) *InvitationHandler {
	return &InvitationHandler{
		invitations: invitations,
		members:     members,
		logger:      logger,
	}
}

func (h *InvitationHandler) RegisterProtected(app fiber.Router) {
	app.Post("/workspaces/:workspaceId/invitations", h.Invite)
	app.Post("/invitations/accept", h.Accept)
}

type inviteRequest struct {
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	ProjectID *string     `json:"projectId"`
}

// Invite godoc
// @Summary Invite someone to the workspace by email
// @Description CLIENT invitations must carry a projectId binding.
// @Tags invitations
// @Accept json
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param invitation body inviteRequest true "Invitation"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/invitations [post]
func (h *InvitationHandler) Invite(c *fiber.Ctx) error {
	workspaceID := c.Params("workspaceId")
	user, member, err := membershipOf(c, h.members, workspaceID)
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Can(member.Role, authz.ActionManageMembers) {
		return response.Forbidden(c, "inviting members requires a privileged role")
	}

	var req inviteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}

	invitation, err := h.invitations.Invite(c.Context(), user, workspaceID, req.Email, req.Role, req.ProjectID)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, InvitationResponse{
		ID:          invitation.ID,
		Email:       invitation.Email,
		WorkspaceID: invitation.WorkspaceID,
		Role:        invitation.Role,
		ProjectID:   invitation.ProjectID,
		ExpiresAt:   invitation.ExpiresAt,
		CreatedAt:   invitation.CreatedAt,
	})
}

type acceptRequest struct {
	Token string `json:"token"`
}

// Accept godoc
// @Summary Accept an invitation
// @Description The logged-in account's email must match the invitation.
// @Tags invitations
// @Accept json
// @Produce json
// @Param token body acceptRequest true "Signed invitation token"
// @Success 201 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /invitations/accept [post]
func (h *InvitationHandler) Accept(c *fiber.Ctx) error {
	user := GetUserFromContext(c)
	if user == nil {
		return response.Unauthorized(c, MsgNotAuthenticated)
	}

	var req acceptRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, MsgInvalidRequestBody)
	}
	if req.Token == "" {
		return response.BadRequest(c, "token is required")
	}

	member, err := h.invitations.Accept(c.Context(), user, req.Token)
	if err != nil {
		return HandleDomainError(c, err)
	}

	return response.Created(c, ToMemberResponse(&domain.MemberWithUser{Member: *member, Name: user.Name, Email: user.Email}))
}

type InvitationResponse struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	WorkspaceID string      `json:"workspaceId"`
	Role        domain.Role `json:"role"`
	ProjectID   *string     `json:"projectId,omitempty"`
	ExpiresAt   time.Time   `json:"expiresAt"`
	CreatedAt   time.Time   `json:"createdAt"`
}
