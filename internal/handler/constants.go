package handler

const (
	APIPrefix = "/api/v1"

	MsgNotAuthenticated   = "not authenticated"
	MsgInvalidRequestBody = "invalid request body"
	MsgNoWorkspaceAccess  = "no access to this workspace"
	MsgWorkspaceRequired  = "workspaceId is required"
	MsgProfileNotFound    = "profile not found"
	MsgProjectNotFound    = "project not found"
	MsgTaskNotFound       = "task not found"
	MsgMemberNotFound     = "member not found"
	MsgAdminOnly          = "this action requires the ADMIN role"
)
