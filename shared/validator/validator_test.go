package validator_test

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"
	"vista/shared/validator"
)

type staffRequest struct {
	Name            string `json:"name"             validate:"required"`
	Email           string `json:"email"            validate:"required,email"`
	Role            string `json:"role"             validate:"omitempty,role"`
	Password        string `json:"password"         validate:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Shift           int    `json:"shift"            validate:"gte=0,lte=3"`
}

func validStaff() staffRequest {
	return staffRequest{
		Name:            "Ada Front",
		Email:           "ada@vista.example",
		Role:            "Front Desk",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		Shift:           1,
	}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(r *staffRequest)
		expectError bool
		message     string
	}{
		{
			name:   "valid request",
			mutate: func(_ *staffRequest) {},
		},
		{
			name:        "missing name",
			mutate:      func(r *staffRequest) { r.Name = "" },
			expectError: true,
			message:     "Name is required",
		},
		{
			name:        "invalid email",
			mutate:      func(r *staffRequest) { r.Email = "not-an-email" },
			expectError: true,
			message:     "Email must be a valid email address",
		},
		{
			name:        "unknown role",
			mutate:      func(r *staffRequest) { r.Role = "Night Auditor" },
			expectError: true,
			message:     "Role must be a known staff role",
		},
		{
			name:   "empty role is optional",
			mutate: func(r *staffRequest) { r.Role = "" },
		},
		{
			name:        "password confirmation mismatch",
			mutate:      func(r *staffRequest) { r.ConfirmPassword = "other-pass" },
			expectError: true,
			message:     "ConfirmPassword must match Password",
		},
		{
			name:        "shift out of range",
			mutate:      func(r *staffRequest) { r.Shift = 4 },
			expectError: true,
			message:     "Shift must be less than or equal to 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validStaff()
			tt.mutate(&req)

			err := validator.ValidateStruct(&req)

			if tt.expectError && err == nil {
				t.Fatal("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Fatalf("expected no validation error, got: %v", err)
			}

			if tt.message != "" && err.Error() != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, err.Error())
			}
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name        string
		field       any
		tag         string
		expectError bool
	}{
		{name: "known role", field: "Housekeeping", tag: "role"},
		{name: "unknown role", field: "Chef", tag: "role", expectError: true},
		{name: "room status with spaces", field: "Out of Order", tag: "oneof=Vacant Occupied Dirty Maintenance 'Out of Order'"},
		{name: "unknown room status", field: "Closed", tag: "oneof=Vacant Occupied Dirty Maintenance 'Out of Order'", expectError: true},
		{name: "date only", field: "2024-03-01", tag: "datetime=2006-01-02"},
		{name: "bad date", field: "01/03/2024", tag: "datetime=2006-01-02", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid body",
			jsonBody: `{"name":"Ada","email":"ada@vista.example","password":"s3cret-pass","confirm_password":"s3cret-pass","shift":2}`,
		},
		{
			name:        "failed validation",
			jsonBody:    `{"name":"Ada","email":"ada@vista.example","password":"s3cret-pass","confirm_password":"nope","shift":2}`,
			expectError: true,
		},
		{
			name:        "malformed body",
			jsonBody:    `{"name":"Ada","email":}`,
			expectError: true,
		},
		{
			name:        "empty body",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data staffRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError && err == nil {
				t.Error("expected validation error, got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("expected no validation error, got: %v", err)
			}
		})
	}
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

type avatarRequest struct {
	Avatar *multipart.FileHeader `validate:"required,mimetypes=image/png image/jpeg,maxfilesize=0.001"`
}

func formFile(t *testing.T, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "avatar.png")
	if err != nil {
		t.Fatal(err)
	}

	if _, err = part.Write(content); err != nil {
		t.Fatal(err)
	}

	if err = writer.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestValidateStruct_Upload(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		message string
	}{
		{
			name:    "png within limit",
			content: pngSignature,
		},
		{
			name:    "text disguised as png",
			content: []byte("definitely not an image"),
			message: "Avatar must be one of image/png image/jpeg",
		},
		{
			name:    "png over limit",
			content: append(append([]byte{}, pngSignature...), bytes.Repeat([]byte{0}, 2048)...),
			message: "Avatar must not exceed 0.001 MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := avatarRequest{Avatar: formFile(t, tt.content)}

			err := validator.ValidateStruct(&req)

			if tt.message == "" {
				if err != nil {
					t.Fatalf("expected no validation error, got: %v", err)
				}

				return
			}

			if err == nil || err.Error() != tt.message {
				t.Errorf("expected message %q, got %v", tt.message, err)
			}
		})
	}
}

func TestValidate_MissingBody(t *testing.T) {
	var data staffRequest

	err := validator.Validate(strings.NewReader(""), &data)

	if err == nil || err.Error() != "request body is required" {
		t.Errorf("expected missing body error, got %v", err)
	}
}
