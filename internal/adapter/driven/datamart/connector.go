package datamart

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	"github.com/diillson/datamart-reports/internal/domain/entity"
	"github.com/diillson/datamart-reports/internal/shared/types"
	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite3"
)

// Connector opens a connection to the datamart with the given credentials.
type Connector interface {
	Open(ctx context.Context, creds *entity.Credentials) (*sql.DB, error)
}

// SQLConnector opens database/sql connections for a named driver.
type SQLConnector struct {
	Driver string
}

// NewSQLConnector cria um conector para o driver informado (mysql por padrão).
func NewSQLConnector(driver string) (*SQLConnector, error) {
	if driver == "" {
		driver = DriverMySQL
	}
	switch driver {
	case DriverMySQL, DriverSQLite:
		return &SQLConnector{Driver: driver}, nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedDriver, driver)
	}
}

// DSN builds the data source name for the connector's driver.
func (c *SQLConnector) DSN(creds *entity.Credentials) string {
	if c.Driver == DriverSQLite {
		return creds.Database
	}

	cfg := mysql.NewConfig()
	cfg.User = creds.User
	cfg.Passwd = creds.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(creds.Host, creds.Port)
	cfg.DBName = creds.Database
	return cfg.FormatDSN()
}

// Open abre e valida a conexão. Credenciais vazias só falham aqui.
func (c *SQLConnector) Open(ctx context.Context, creds *entity.Credentials) (*sql.DB, error) {
	if creds == nil {
		creds = &entity.Credentials{}
	}

	db, err := sql.Open(c.Driver, c.DSN(creds))
	if err != nil {
		return nil, fmt.Errorf("error opening %s datamart connection: %w", c.Driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error connecting to %s datamart at %s: %w", c.Driver, describeTarget(c.Driver, creds), err)
	}

	return db, nil
}

func describeTarget(driver string, creds *entity.Credentials) string {
	if driver == DriverSQLite {
		return creds.Database
	}
	return fmt.Sprintf("%s@%s/%s", creds.User, net.JoinHostPort(creds.Host, creds.Port), creds.Database)
}
