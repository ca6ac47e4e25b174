package postgres_test

import (
	"net/url"
	"testing"
	"vista/config"
	"vista/infras/postgres"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	node := config.PostgresNode{
		Host:     "db",
		Port:     "5432",
		Username: "vista",
		Password: "p@ss:word",
		SSLMode:  "disable",
	}

	tests := []struct {
		name     string
		timezone string
		params   url.Values
		expected string
	}{
		{
			name:     "escapes credentials",
			expected: "postgres://vista:p%40ss%3Aword@db:5432/vista?sslmode=disable",
		},
		{
			name:     "session timezone and extra params",
			timezone: "Asia/Jakarta",
			params:   url.Values{"x-migrations-table": {"schema_migrations"}},
			expected: "postgres://vista:p%40ss%3Aword@db:5432/vista?sslmode=disable&timezone=Asia%2FJakarta&x-migrations-table=schema_migrations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := node
			n.Timezone = tt.timezone

			assert.Equal(t, tt.expected, postgres.DSN(n, "vista", tt.params))
		})
	}
}
