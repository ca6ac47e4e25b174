package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"vista/config"
	"vista/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp      = "up"
	ActionDown    = "down"
	ActionStepUp  = "step-up"
	ActionDrop    = "drop"
	ActionVersion = "version"
	ActionForce   = "force"
)

// Actions lists every action Run accepts, in the order they are shown to operators.
var Actions = []string{ActionUp, ActionDown, ActionStepUp, ActionDrop, ActionVersion, ActionForce}

// MigrationURL builds the golang-migrate DSN for the write database.
func MigrationURL(cfg *config.Config) string {
	params := url.Values{}
	if cfg.DB.Postgres.MigrationTable != "" {
		params.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)
	}

	return postgres.DSN(cfg.DB.Postgres.Write, cfg.DB.Postgres.Prefix+cfg.DB.Postgres.Write.Name, params)
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(cfg.DB.Postgres.MigrationPath, MigrationURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

// Run applies a single migration action. args carries the target version for ActionForce.
func Run(cfg *config.Config, action string, args ...string) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer func() {
		if srcErr, dbErr := mig.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("failed to close migrate instance")
		}
	}()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	case ActionVersion:
		return logVersion(mig)
	case ActionForce:
		return force(mig, args)
	default:
		return fmt.Errorf("unknown migration action %q", action)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Str("action", action).Msg("Database schema already up to date")

		return nil
	}

	if err != nil {
		return fmt.Errorf("error running migration %s: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migrations completed successfully")

	return logVersion(mig)
}

func logVersion(mig *migrate.Migrate) error {
	version, dirty, err := mig.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info().Msg("Database has no migrations applied")

		return nil
	}

	if err != nil {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Database migration version")

	return nil
}

// force marks a version as applied without running it, clearing the dirty flag after a failed migration.
func force(mig *migrate.Migrate, args []string) error {
	if len(args) == 0 {
		return errors.New("force requires a target version")
	}

	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid target version %q: %w", args[0], err)
	}

	if err = mig.Force(version); err != nil {
		return fmt.Errorf("error forcing migration version: %w", err)
	}

	return logVersion(mig)
}

func Up(cfg *config.Config) error {
	return Run(cfg, ActionUp)
}
