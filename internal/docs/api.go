// Package docs contains Swagger documentation for the TaskForge API.
//
//	@title						TaskForge API
//	@version					1.0
//	@description				Multi-tenant project and task management backend
//	@contact.name				API Support
//	@contact.email				support@taskforge.local
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//	@host						localhost:8080
//	@BasePath					/api/v1
//	@schemes					http https
//	@tag.name					auth
//	@tag.description			Login, logout and the current session
//	@tag.name					workspaces
//	@tag.description			Workspace management
//	@tag.name					members
//	@tag.description			Workspace membership and roles
//	@tag.name					projects
//	@tag.description			Project management and analytics
//	@tag.name					tasks
//	@tag.description			Task management
//	@tag.name					profiles
//	@tag.description			User profiles and bulk import
//	@tag.name					notifications
//	@tag.description			In-app notifications and event streams
//	@tag.name					invitations
//	@tag.description			Workspace invitations
//	@tag.name					admin
//	@tag.description			Break-glass operations and the activity log
package docs
