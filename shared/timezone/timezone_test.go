package timezone_test

import (
	"testing"
	"vista/shared/constant"
	"vista/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestNow(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
}

func TestParseAndFormat(t *testing.T) {
	parsed, err := timezone.Parse(constant.DateOnlyFormat, "2024-01-01")

	assert.NoError(t, err)
	assert.Equal(t, timezone.GetLocation(), parsed.Location())
	assert.Equal(t, "2024-01-01", timezone.Format(parsed, constant.DateOnlyFormat))

	_, err = timezone.Parse(constant.DateOnlyFormat, "01/01/2024")
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	evening, err := timezone.Parse("2006-01-02 15:04", "2024-03-09 23:45")
	assert.NoError(t, err)

	start := timezone.StartOfDay(evening)

	assert.Equal(t, "2024-03-09 00:00", timezone.Format(start, "2006-01-02 15:04"))
	assert.Equal(t, start, timezone.StartOfDay(start))
}
