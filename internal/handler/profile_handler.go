package handler

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/taskforge/backend/internal/authz"
	"github.com/taskforge/backend/internal/bulkimport"
	"github.com/taskforge/backend/internal/response"
	"github.com/taskforge/backend/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	members  *service.MemberService
	logger   *slog.Logger
}

func NewProfileHandler(profiles *service.ProfileService, members *service.MemberService, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		members:  members,
		logger:   logger,
	}
}

func (h *ProfileHandler) RegisterProtected(app fiber.Router) {
	profiles := app.Group("/workspaces/:workspaceId/profiles")
	profiles.Get("/", h.List)
	profiles.Get("/:userId", h.Get)
	profiles.Post("/bulk-upload", h.BulkUpload)
	profiles.Delete("/:userId", h.Delete)
}

// List godoc
// @Summary List profiles
// @Tags profiles
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspaceId}/profiles [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	if _, _, err := membershipOf(c, h.members, c.Params("workspaceId")); err != nil {
		return HandleDomainError(c, err)
	}

	users, err := h.profiles.List(c.Context())
	if err != nil {
		return HandleDomainError(c, err)
	}

	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return response.OK(c, responses)
}

// Get godoc
// @Summary Get one profile
// @Tags profiles
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /workspaces/{workspaceId}/profiles/{userId} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	if _, _, err := membershipOf(c, h.members, c.Params("workspaceId")); err != nil {
		return HandleDomainError(c, err)
	}

	user, err := h.profiles.Get(c.Context(), c.Params("userId"))
	if err != nil {
		return HandleNotFoundOrInternal(c, err, MsgProfileNotFound)
	}
	return response.OK(c, ToUserResponse(user))
}

// BulkUpload godoc
// @Summary Import profiles from a CSV or XLSX file
// @Description Each row succeeds or fails on its own; the response lists per-row errors.
// @Tags profiles
// @Accept multipart/form-data
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param file formData file true "CSV or XLSX, max 10MB, max 100 rows"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/profiles/bulk-upload [post]
func (h *ProfileHandler) BulkUpload(c *fiber.Ctx) error {
	_, member, err := membershipOf(c, h.members, c.Params("workspaceId"))
	if err != nil {
		return HandleDomainError(c, err)
	}
	if !authz.Can(member.Role, authz.ActionBulkImportProfiles) {
		return response.Forbidden(c, "bulk import requires a privileged role")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "file is required")
	}
	if fileHeader.Size > bulkimport.MaxFileSize {
		return response.BadRequest(c, bulkimport.ErrFileTooLarge.Error())
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "failed to read file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, bulkimport.MaxFileSize+1))
	if err != nil {
		return response.BadRequest(c, "failed to read file")
	}

	rows, err := bulkimport.Parse(fileHeader.Filename, data)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	result, err := h.profiles.BulkImport(c.Context(), rows)
	if err != nil {
		return HandleDomainError(c, err)
	}
	return response.OK(c, result)
}

// Delete godoc
// @Summary Delete a profile
// @Description Restricted to ADMIN. Cascades over sessions, memberships, invitations and notifications, and unassigns tasks.
// @Tags profiles
// @Produce json
// @Param workspaceId path string true "Workspace ID"
// @Param userId path string true "User ID"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /workspaces/{workspaceId}/profiles/{userId} [delete]
func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	user, member, err := membershipOf(c, h.members, c.Params("workspaceId"))
	if err != nil {
		return HandleDomainError(c, err)
	}

	targetID := c.Params("userId")
	if err := authz.CheckProfileDeletion(member.Role, user.ID, targetID); err != nil {
		return HandleDomainError(c, err)
	}

	if err := h.profiles.Delete(c.Context(), user, targetID); err != nil {
		return HandleNotFoundOrInternal(c, err, MsgProfileNotFound)
	}
	return response.NoContent(c)
}
