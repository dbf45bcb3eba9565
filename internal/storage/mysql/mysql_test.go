package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SkillsFundingAgency/CalculateFunding-Common-sub002/internal/config"
)

var testDB *sql.DB

// Integration tests run only when TEST_MYSQL_DSN points at a disposable database,
// e.g. "root:@tcp(localhost:3306)/funding_test?parseTime=true".
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		os.Exit(m.Run())
	}

	var err error
	testDB, err = sql.Open("mysql", dsn)
	if err != nil {
		panic(fmt.Errorf("open test db: %w", err))
	}

	if err := testDB.Ping(); err != nil {
		panic(fmt.Errorf("ping failed: %w", err))
	}
	if err := NewWithDB(testDB).Migrate(context.Background()); err != nil {
		panic(err)
	}

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

func requireDB(t *testing.T) *Storage {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_MYSQL_DSN not set")
	}
	return NewWithDB(testDB)
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DB{
		User:      "svc",
		Password:  "secret",
		Host:      "db.local",
		Port:      3307,
		Name:      "templates",
		ParseTime: true,
	})

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "svc", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.local:3307", parsed.Addr)
	assert.Equal(t, "templates", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}
