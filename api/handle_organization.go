package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portcullis-hq/portcullis-backend/dto"
	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/pure_utils"
)

func (api *API) handleCreateOrganization(c *gin.Context) {
	var body dto.CreateOrganizationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewOrganizationUseCase()
	org, err := usecase.CreateOrganization(c.Request.Context(), models.CreateOrganizationInput{
		Name:  body.Name,
		Email: body.Email,
	})
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"organization": dto.AdaptOrganizationDto(org)})
}

func (api *API) handleGetOrganization(c *gin.Context) {
	var uri OrganizationUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewOrganizationUseCase()
	org, err := usecase.GetOrganization(c.Request.Context(), uri.OrganizationId)
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": dto.AdaptOrganizationDto(org)})
}

func (api *API) handleUpdateOrganization(c *gin.Context) {
	var uri OrganizationUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	var body dto.UpdateOrganizationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewOrganizationUseCase()
	org, err := usecase.UpdateOrganization(c.Request.Context(), models.UpdateOrganizationInput{
		Id:    uri.OrganizationId,
		Name:  body.Name,
		Email: body.Email,
	})
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"organization": dto.AdaptOrganizationDto(org)})
}

func (api *API) handleDeleteOrganization(c *gin.Context) {
	var uri OrganizationUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewOrganizationUseCase()
	err := usecase.DeleteOrganization(c.Request.Context(), uri.OrganizationId)
	if presentError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func (api *API) handleGetUserMemberships(c *gin.Context) {
	usecase := api.UsecasesWithProfile(c).NewOrganizationUseCase()
	memberships, err := usecase.GetUserMemberships(c.Request.Context())
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"memberships": pure_utils.Map(memberships, dto.AdaptMembershipDto),
	})
}
