package helper_test

import (
	"testing"
	"vista/config"
	"vista/helper"

	"github.com/stretchr/testify/assert"
)

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(cfg *config.Config)
		expected string
	}{
		{
			name: "plain credentials",
			setup: func(cfg *config.Config) {
				cfg.DB.Postgres.MigrationTable = "schema_migrations"
			},
			expected: "postgres://vista:secret@db:5432/vista?sslmode=disable&x-migrations-table=schema_migrations",
		},
		{
			name: "prefix and reserved characters in password",
			setup: func(cfg *config.Config) {
				cfg.DB.Postgres.Prefix = "test_"
				cfg.DB.Postgres.Write.Password = "p@ss/word"
			},
			expected: "postgres://vista:p%40ss%2Fword@db:5432/test_vista?sslmode=disable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.DB.Postgres.Write.Host = "db"
			cfg.DB.Postgres.Write.Port = "5432"
			cfg.DB.Postgres.Write.Username = "vista"
			cfg.DB.Postgres.Write.Password = "secret"
			cfg.DB.Postgres.Write.Name = "vista"
			cfg.DB.Postgres.Write.SSLMode = "disable"
			tt.setup(cfg)

			assert.Equal(t, tt.expected, helper.MigrationURL(cfg))
		})
	}
}
