package dto_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"
	"vista/internal/domains/profile/model/dto"
	"vista/shared/failure"
	"vista/shared/validator"

	"github.com/stretchr/testify/assert"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func uploaded(t *testing.T, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="file"; filename="avatar.png"`},
		"Content-Type":        {contentType},
	})
	assert.NoError(t, err)

	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	assert.NoError(t, err)

	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["file"][0]
}

func TestUploadAvatarRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		content     []byte
		wantMessage string
	}{
		{
			name:        "png",
			contentType: "image/png",
			content:     pngBytes,
		},
		{
			name:        "text labelled as png",
			contentType: "image/png",
			content:     []byte("not an image at all"),
			wantMessage: "Avatar must be one of image/png image/jpeg",
		},
		{
			name:        "png over five megabytes",
			contentType: "image/png",
			content:     append(append([]byte{}, pngBytes...), make([]byte, 5<<20)...),
			wantMessage: "Avatar must not exceed 5 MB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.UploadAvatarRequest{Avatar: uploaded(t, tt.contentType, tt.content)}

			err := validator.ValidateStruct(&req)

			if tt.wantMessage == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMessage)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}
