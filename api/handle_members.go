package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portcullis-hq/portcullis-backend/dto"
	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/pure_utils"
)

func (api *API) handleGetOrganizationMembers(c *gin.Context) {
	var uri OrganizationUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewMembershipUseCase()
	members, err := usecase.GetOrganizationMembers(c.Request.Context(), uri.OrganizationId)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"members": pure_utils.Map(members, dto.AdaptMemberDto),
	})
}

func (api *API) handleInviteMember(c *gin.Context) {
	var uri OrganizationUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	var body dto.InviteMemberBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewMembershipUseCase()
	org, err := usecase.InviteMember(
		c.Request.Context(),
		uri.OrganizationId,
		models.UserId(body.UserId),
		models.RoleFromString(body.Role),
	)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": dto.AdaptOrganizationDto(org)})
}

func (api *API) handleKickoutMember(c *gin.Context) {
	var uri MemberUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewMembershipUseCase()
	_, err := usecase.KickoutMember(c.Request.Context(), uri.OrganizationId, models.UserId(uri.UserId))
	if presentError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *API) handleLeaveOrganization(c *gin.Context) {
	var uri OrganizationUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewMembershipUseCase()
	_, err := usecase.LeaveOrganization(c.Request.Context(), uri.OrganizationId)
	if presentError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *API) handleUpdateMemberRole(c *gin.Context) {
	var uri MemberUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	var body dto.UpdateMemberRoleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewMembershipUseCase()
	org, err := usecase.UpdateMemberRole(
		c.Request.Context(),
		uri.OrganizationId,
		models.UserId(uri.UserId),
		models.RoleFromString(body.Role),
	)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": dto.AdaptOrganizationDto(org)})
}
