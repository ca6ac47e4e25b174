package dto

import (
	"strings"
	"vista/internal/domains/guest/model"
	"vista/shared"
	gDto "vista/shared/dto"
	gModel "vista/shared/model"
	"vista/shared/timezone"

	"github.com/google/uuid"
)

type CreateGuestRequest struct {
	Name          string `json:"name"           validate:"required,max=100"`
	Email         string `json:"email"          validate:"omitempty,email,max=100"`
	Phone         string `json:"phone"          validate:"omitempty,max=20"`
	LoyaltyStatus string `json:"loyalty_status" validate:"omitempty,max=50"`
}

func (c *CreateGuestRequest) ToModel(user string) model.Guest {
	return model.Guest{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(c.Name),
		Email:         strings.ToLower(c.Email),
		Phone:         c.Phone,
		LoyaltyStatus: c.LoyaltyStatus,
		Metadata:      gModel.NewMetadata(user, timezone.Now()),
	}
}

type GuestResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LoyaltyStatus string `json:"loyalty_status"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.Guest) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.LoyaltyStatus = model.LoyaltyStatus
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.Guest, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, m := range models {
		r.Guests[i].FromModel(m)
	}
}
