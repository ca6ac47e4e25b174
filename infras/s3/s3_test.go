package s3

import (
	"testing"
	"vista/config"

	"github.com/stretchr/testify/assert"
)

func TestObjectKeyFromURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.External.S3.PublicDomain = "https://cdn.vista.example"
	cfg.External.S3.APIEndpoint = "https://storage.vista.example"
	cfg.External.S3.BucketName = "vista"

	svc := &s3Impl{config: cfg}

	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "public domain", url: "https://cdn.vista.example/avatars/u1-abc.png", want: "avatars/u1-abc.png"},
		{name: "api endpoint", url: "https://storage.vista.example/vista/avatars/u1-abc.png", want: "avatars/u1-abc.png"},
		{name: "external avatar", url: "https://ui-avatars.com/api/?name=Ada+Front", want: ""},
		{name: "domain only", url: "https://cdn.vista.example/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.ObjectKeyFromURL(tt.url))
		})
	}

	assert.Equal(t, "https://cdn.vista.example/avatars/u1-abc.png", svc.publicURL("avatars/u1-abc.png"))
}
