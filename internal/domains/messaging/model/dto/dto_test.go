package dto_test

import (
	"testing"
	"vista/internal/domains/messaging/model/dto"
	"vista/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestStartThreadRequest_Validate(t *testing.T) {
	tests := []struct {
		name        string
		ids         []string
		wantMessage string
	}{
		{name: "uuid participants", ids: []string{"5f0c6d8e-3b1a-4c7e-9d2f-1a2b3c4d5e6f"}},
		{name: "malformed participant", ids: []string{"5f0c6d8e-3b1a-4c7e-9d2f-1a2b3c4d5e6f", "ben"}, wantMessage: "ParticipantIDs[1] must be a valid UUID"},
		{name: "no participants", ids: []string{}, wantMessage: "ParticipantIDs must be greater than or equal to 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&dto.StartThreadRequest{ParticipantIDs: tt.ids})

			if tt.wantMessage == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMessage)
		})
	}
}
