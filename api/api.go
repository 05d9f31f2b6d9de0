package api

import (
	"github.com/gin-gonic/gin"

	"github.com/portcullis-hq/portcullis-backend/usecases"
	"github.com/portcullis-hq/portcullis-backend/utils"
)

type API struct {
	usecases usecases.Usecases
}

func New(usecases usecases.Usecases) *API {
	return &API{usecases: usecases}
}

// UsecasesWithProfile binds the authenticated caller to the usecase
// container. The authentication middleware guarantees a profile is present on
// every route registered behind it.
func (api *API) UsecasesWithProfile(c *gin.Context) usecases.UsecasesWithProfile {
	profile, _ := utils.ProfileFromContext(c.Request.Context())
	return api.usecases.WithProfile(profile)
}

// Routes registers the authenticated API surface.
func (api *API) Routes(r gin.IRoutes) {
	r.POST("/organizations", api.handleCreateOrganization)
	r.GET("/organizations/:organization_id", api.handleGetOrganization)
	r.PATCH("/organizations/:organization_id", api.handleUpdateOrganization)
	r.DELETE("/organizations/:organization_id", api.handleDeleteOrganization)

	r.GET("/organizations/:organization_id/members", api.handleGetOrganizationMembers)
	r.POST("/organizations/:organization_id/members", api.handleInviteMember)
	r.DELETE("/organizations/:organization_id/members/:user_id", api.handleKickoutMember)
	r.POST("/organizations/:organization_id/leave", api.handleLeaveOrganization)
	r.PATCH("/organizations/:organization_id/members/:user_id", api.handleUpdateMemberRole)

	r.POST("/organizations/:organization_id/api-keys", api.handleAddApiKey)
	r.DELETE("/organizations/:organization_id/api-keys/:key_id", api.handleDeleteApiKey)

	r.GET("/memberships", api.handleGetUserMemberships)
}

// PublicRoutes registers the surface reachable without a credential.
func (api *API) PublicRoutes(r gin.IRoutes) {
	r.GET("/keys/:key_id", api.handleGetPublicKey)
}

type OrganizationUriInput struct {
	OrganizationId string `uri:"organization_id" binding:"required,uuid"`
}

type MemberUriInput struct {
	OrganizationId string `uri:"organization_id" binding:"required,uuid"`
	UserId         string `uri:"user_id" binding:"required"`
}
