package dto

import (
	"github.com/portcullis-hq/portcullis-backend/models"
)

type MemberDto struct {
	UserId string `json:"user_id"`
	Role   string `json:"role"`
}

func AdaptMemberDto(member models.OrganizationMember) MemberDto {
	return MemberDto{
		UserId: string(member.UserId),
		Role:   member.Role.String(),
	}
}

type MembershipDto struct {
	OrganizationId   string `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Role             string `json:"role"`
}

func AdaptMembershipDto(membership models.OrganizationMembership) MembershipDto {
	return MembershipDto{
		OrganizationId:   membership.OrganizationId,
		OrganizationName: membership.OrganizationName,
		Role:             membership.Role.String(),
	}
}

type InviteMemberBody struct {
	UserId string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=MEMBER ADMIN OWNER"`
}

type UpdateMemberRoleBody struct {
	Role string `json:"role" binding:"required,oneof=MEMBER ADMIN OWNER"`
}
