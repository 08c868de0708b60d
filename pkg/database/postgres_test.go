package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/college-portal-api/pkg/config"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "portal", Password: "pw", Name: "college", SSLMode: "require"})
	assert.Equal(t, "host=db port=5433 user=portal password=pw dbname=college sslmode=require", dsn)
}
