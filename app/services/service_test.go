package services

import (
	"testing"

	"taskboard/app/db"
	"taskboard/app/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.ConnectSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.Task{}))
	return gdb
}
