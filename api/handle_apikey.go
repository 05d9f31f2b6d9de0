package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portcullis-hq/portcullis-backend/dto"
	"github.com/portcullis-hq/portcullis-backend/models"
)

func (api *API) handleAddApiKey(c *gin.Context) {
	var uri OrganizationUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	var body dto.CreateApiKeyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewApiKeyUseCase()
	apiKey, err := usecase.AddApiKey(c.Request.Context(), models.CreateApiKeyInput{
		OrganizationId: uri.OrganizationId,
		Name:           body.Name,
		Claims:         body.Claims,
	})
	if presentError(c, err) {
		return
	}
	c.JSON(http.StatusCreated, gin.H{"api_key": dto.AdaptCreatedApiKeyDto(apiKey)})
}

type ApiKeyUriInput struct {
	OrganizationId string `uri:"organization_id" binding:"required,uuid"`
	KeyId          string `uri:"key_id" binding:"required,uuid"`
}

func (api *API) handleDeleteApiKey(c *gin.Context) {
	var uri ApiKeyUriInput
	if err := c.ShouldBindUri(&uri); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	usecase := api.UsecasesWithProfile(c).NewApiKeyUseCase()
	err := usecase.DeleteApiKey(c.Request.Context(), uri.OrganizationId, uri.KeyId)
	if presentError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
