package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/config"
)

type Storage struct {
	db *sql.DB
}

// DSN builds the driver connection string from config.
func DSN(cfg config.DB) string {
	c := mysql.NewConfig()
	c.User = cfg.User
	c.Passwd = cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	c.DBName = cfg.Name
	c.ParseTime = cfg.ParseTime
	return c.FormatDSN()
}

func New(cfg config.Config) (*Storage, error) {
	const op = "storage.mysql.New"

	db, err := sql.Open("mysql", DSN(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB wraps an already opened pool.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

func (s *Storage) Close() error {
	return s.db.Close()
}

const schemaDDL = `
	CREATE TABLE IF NOT EXISTS funding_templates (
		id                BIGINT AUTO_INCREMENT PRIMARY KEY,
		funding_stream_id VARCHAR(64)  NOT NULL,
		funding_period_id VARCHAR(64)  NOT NULL,
		template_version  VARCHAR(32)  NOT NULL,
		schema_version    VARCHAR(16)  NOT NULL,
		content           LONGTEXT     NOT NULL,
		created_at        DATETIME     NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_funding_templates_key (funding_stream_id, funding_period_id, template_version)
	)`

// Migrate creates the tables the storage needs.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.mysql.Migrate"

	if _, err := s.db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
