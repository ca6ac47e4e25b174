package dto

import (
	"io"
	"mime/multipart"
	"time"
	"vista/internal/domains/profile/model"
	"vista/shared"
	"vista/shared/constant"
	gDto "vista/shared/dto"
	"vista/shared/timezone"
)

type ProfileResponse struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Role       string  `json:"role"`
	Bio        string  `json:"bio"`
	AvatarURL  string  `json:"avatar_url"`
	LastActive *string `json:"last_active,omitempty"`
	gDto.Metadata
}

func (r *ProfileResponse) FromModel(model model.Profile) {
	r.ID = model.ID
	r.FirstName = model.FirstName
	r.LastName = model.LastName
	r.FullName = model.FullName()
	r.Email = model.Email
	r.Phone = model.Phone
	r.Role = model.Role
	r.Bio = model.Bio
	r.AvatarURL = model.AvatarURL
	r.Metadata.FromModel(model.Metadata)

	if model.LastActive != nil {
		lastActive := timezone.Format(*model.LastActive, constant.DateFormat)
		r.LastActive = &lastActive
	}
}

type GetProfilesResponse struct {
	Profiles  []ProfileResponse `json:"profiles"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProfilesResponse) FromModels(models []model.Profile, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Profiles = make([]ProfileResponse, len(models))
	for i, m := range models {
		r.Profiles[i].FromModel(m)
	}
}

// UpdateProfileRequest is a partial update; empty fields are left untouched.
type UpdateProfileRequest struct {
	FirstName string `db:"first_name" json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName  string `db:"last_name"  json:"last_name"  validate:"omitempty,min=1,max=100"`
	Phone     string `db:"phone"      json:"phone"      validate:"omitempty,max=30"`
	Role      string `db:"role"       json:"role"       validate:"omitempty,role"`
	Bio       string `db:"bio"        json:"bio"        validate:"omitempty,max=500"`
}

// UploadAvatarRequest pairs the form header, checked by the validator, with the open file the service reads.
type UploadAvatarRequest struct {
	Avatar     *multipart.FileHeader `json:"avatar" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpeg,maxfilesize=5"`
	AvatarFile io.Reader             `json:"-"`
}

type updateAvatar struct {
	AvatarURL string `db:"avatar_url"`
}

// AvatarFields is the column patch applied after a successful upload.
func AvatarFields(url, user string) map[string]any {
	return shared.TransformFields(updateAvatar{AvatarURL: url}, user)
}

type touch struct {
	LastActive time.Time `db:"last_active"`
}

func TouchFields(at time.Time) map[string]any {
	return shared.TransformFields(touch{LastActive: at}, constant.ContextSystem)
}
