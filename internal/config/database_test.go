package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_BuildDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db.internal",
		Port:     "3306",
		User:     "library",
		Password: "secret",
		DBName:   "libraryhub",
		Path:     "libraryhub.db",
	}

	assert.Equal(t,
		"library:secret@tcp(db.internal:3306)/libraryhub?charset=utf8mb4&parseTime=True&loc=Local",
		buildMySQLDSN(cfg))

	assert.Equal(t,
		"host=db.internal user=library password=secret dbname=libraryhub port=3306 sslmode=disable TimeZone=UTC",
		buildPostgresDSN(cfg))

	assert.Equal(t,
		"file:libraryhub.db?_busy_timeout=5000&_foreign_keys=1",
		buildSQLiteDSN(cfg))
}

func Test_OpenDialector_RejectsUnknownDriver(t *testing.T) {
	_, err := openDialector(DatabaseConfig{Driver: "oracle"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
}
