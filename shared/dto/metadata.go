package dto

import (
	"time"
	"vista/shared/constant"
	"vista/shared/model"
	"vista/shared/timezone"
)

// Metadata is the audit block embedded in every response.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	*m = Metadata{
		CreatedAt:  formatTimestamp(model.CreatedAt),
		ModifiedAt: formatTimestamp(model.ModifiedAt),
		CreatedBy:  model.CreatedBy,
		ModifiedBy: model.ModifiedBy,
	}
}

// formatTimestamp renders in the application timezone. Unset timestamps render empty.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return timezone.Format(t, constant.DateFormat)
}
