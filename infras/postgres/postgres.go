package postgres

//nolint:revive
import (
	"net"
	"net/url"
	"time"
	"vista/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const driverName = "postgres"

// Connection splits reads from writes. Both point at the same database unless READ_* targets a replica.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	return &Connection{
		Read:  connect(cfg, "read", cfg.DB.Postgres.Read),
		Write: connect(cfg, "write", cfg.DB.Postgres.Write),
	}
}

// DSN renders a lib/pq connection URL for node with credentials escaped. params are appended to the query.
func DSN(node config.PostgresNode, dbName string, params url.Values) string {
	query := url.Values{}
	query.Set("sslmode", node.SSLMode)

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	for key, values := range params {
		query[key] = values
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + dbName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// connect retries MAX_RETRY times and exits the process when the database never answers.
func connect(cfg *config.Config, role string, node config.PostgresNode) *sqlx.DB {
	pool := cfg.DB.Postgres
	dbName := pool.Prefix + node.Name
	logger := log.With().Str("role", role).Str("addr", net.JoinHostPort(node.Host, node.Port)).Str("db", dbName).Logger()

	var lastErr error

	for attempt := 1; attempt <= max(pool.MaxRetry, 1); attempt++ {
		db, err := sqlx.Connect(driverName, DSN(node, dbName, nil))
		if err == nil {
			db.SetMaxOpenConns(pool.MaxOpenConns)
			db.SetMaxIdleConns(pool.MaxIdleConns)
			db.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeMin) * time.Minute)

			logger.Info().Int("max_open_conns", pool.MaxOpenConns).Msg("Connected to database")

			return db
		}

		lastErr = err
		logger.Warn().Err(err).Int("attempt", attempt).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(pool.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Err(lastErr).Msg("Giving up connecting to database")

	return nil
}
