package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/readmarathon/reading-marathon-api/internal/auth"
	"github.com/readmarathon/reading-marathon-api/internal/models"
	"gorm.io/gorm"
)

type MemberHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewMemberHandler(db *gorm.DB, authHandler *auth.AuthHandler) *MemberHandler {
	return &MemberHandler{db: db, authHandler: authHandler}
}

type ListMembersInput struct {
	auth.AuthInput
}

type ListMembersOutput struct {
	Body []models.Member
}

func (h *MemberHandler) HandleList(ctx context.Context, input *ListMembersInput) (*ListMembersOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var members []models.Member
	if err := h.db.Order("name").Find(&members).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list members")
	}

	return &ListMembersOutput{Body: members}, nil
}

type AddMemberInput struct {
	auth.AuthInput
	Body struct {
		Name string `json:"name" doc:"Member name as it appears on the form" required:"true"`
	}
}

type AddMemberOutput struct {
	Body struct {
		Member  models.Member `json:"member"`
		Message string        `json:"message"`
	}
}

// HandleAdd creates a new member, or reactivates an archived one with the
// same name. An already-active member is a conflict.
func (h *MemberHandler) HandleAdd(ctx context.Context, input *AddMemberInput) (*AddMemberOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var member models.Member
	err := h.db.Where("name = ?", input.Body.Name).First(&member).Error
	res := &AddMemberOutput{}

	switch {
	case err == nil && member.Active:
		return nil, huma.Error409Conflict("Member already exists and is active")
	case err == nil:
		if err := h.db.Model(&member).Update("active", true).Error; err != nil {
			return nil, huma.Error500InternalServerError("Failed to reactivate member")
		}
		member.Active = true
		res.Body.Message = "Member reactivated"
	case err == gorm.ErrRecordNotFound:
		member = models.Member{Name: input.Body.Name, Active: true}
		if err := h.db.Create(&member).Error; err != nil {
			return nil, huma.Error500InternalServerError("Failed to create member")
		}
		res.Body.Message = "Member added"
	default:
		return nil, huma.Error500InternalServerError("Database error")
	}

	res.Body.Member = member
	return res, nil
}

type MemberStatusInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type MemberStatusOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func (h *MemberHandler) HandleDeactivate(ctx context.Context, input *MemberStatusInput) (*MemberStatusOutput, error) {
	return h.setStatus(ctx, input, false, "Member deactivated")
}

func (h *MemberHandler) HandleReactivate(ctx context.Context, input *MemberStatusInput) (*MemberStatusOutput, error) {
	return h.setStatus(ctx, input, true, "Member reactivated")
}

func (h *MemberHandler) setStatus(ctx context.Context, input *MemberStatusInput, active bool, message string) (*MemberStatusOutput, error) {
	if err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var member models.Member
	if err := h.db.First(&member, input.ID).Error; err != nil {
		return nil, huma.Error404NotFound("Member not found")
	}

	if err := h.db.Model(&member).Update("active", active).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to update member")
	}

	res := &MemberStatusOutput{}
	res.Body.Message = message
	return res, nil
}
