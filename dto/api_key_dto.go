package dto

import (
	"github.com/portcullis-hq/portcullis-backend/models"
)

type ApiKeyDto struct {
	KeyId  string            `json:"key_id"`
	Name   string            `json:"name"`
	Claims map[string]string `json:"claims"`
	Role   string            `json:"role"`
}

// AdaptApiKeyDto deliberately omits the signed token: it is returned once, at
// creation time, by AdaptCreatedApiKeyDto.
func AdaptApiKeyDto(apiKey models.ApiKey) ApiKeyDto {
	return ApiKeyDto{
		KeyId:  apiKey.KeyId,
		Name:   apiKey.Name,
		Claims: apiKey.Claims,
		Role:   apiKey.Role().String(),
	}
}

type CreatedApiKeyDto struct {
	ApiKeyDto
	SignedToken string `json:"signed_token"`
}

func AdaptCreatedApiKeyDto(apiKey models.ApiKey) CreatedApiKeyDto {
	return CreatedApiKeyDto{
		ApiKeyDto:   AdaptApiKeyDto(apiKey),
		SignedToken: apiKey.SignedToken,
	}
}

type CreateApiKeyBody struct {
	Name   string            `json:"name" binding:"required"`
	Claims map[string]string `json:"claims"`
}
