package response_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"vista/shared/constant"
	"vista/shared/failure"
	"vista/transport/http/response"

	"github.com/stretchr/testify/assert"
)

func TestWithError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "failure keeps its message",
			err:        failure.NotFound("room not found"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"room not found"}`,
		},
		{
			name:       "wrapped failure",
			err:        fmt.Errorf("checking in: %w", failure.Conflict("booking is not confirmed")),
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"checking in: booking is not confirmed"}`,
		},
		{
			name:       "internal error is masked",
			err:        errors.New("pq: relation \"rooms\" does not exist"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"` + constant.ResponseErrorInternal + `"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			response.WithError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, constant.ContentTypeJSON, rec.Header().Get(constant.RequestHeaderContentType))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestWithJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithJSON(rec, http.StatusCreated, map[string]string{"id": "room-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"room-1"}}`, rec.Body.String())
}

func TestWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()

	response.WithRequestLimitExceeded(rec)

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"message":"`+constant.ResponseErrorRequestLimitExceeded+`"}`, rec.Body.String())
}
