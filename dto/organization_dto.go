package dto

import (
	"github.com/portcullis-hq/portcullis-backend/models"
	"github.com/portcullis-hq/portcullis-backend/pure_utils"
)

type OrganizationDto struct {
	Id      string      `json:"id"`
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Members []MemberDto `json:"members"`
	ApiKeys []ApiKeyDto `json:"api_keys"`
}

func AdaptOrganizationDto(org models.Organization) OrganizationDto {
	return OrganizationDto{
		Id:      org.Id,
		Name:    org.Name,
		Email:   org.Email,
		Members: pure_utils.Map(org.Members, AdaptMemberDto),
		ApiKeys: pure_utils.Map(org.ApiKeys, AdaptApiKeyDto),
	}
}

type CreateOrganizationBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateOrganizationBody struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}
