package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
)

func TestConnect_Failures(t *testing.T) {
	t.Run("Unreachable", func(t *testing.T) {
		db, err := Connect(Config{Driver: DriverMySQL, Host: "localhost", Port: 9999, User: "root", Name: "graph", TimeoutSeconds: 1})
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("UnknownDriver", func(t *testing.T) {
		_, err := Connect(Config{Driver: "oracle"})
		assert.Error(t, err)
	})
}

func TestTableColumns_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE follows (follower TEXT, followee TEXT, since INTEGER)").Error)

	cols, err := TableColumns(db, "follows")
	require.NoError(t, err)
	assert.Equal(t, []string{"follower", "followee", "since"}, cols)

	_, err = TableColumns(db, "missing")
	assert.Error(t, err)

	_, err = TableColumns(db, "follows; DROP TABLE follows")
	assert.Error(t, err)
}

func TestTableColumns_MySQL(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT column_name FROM information_schema.columns").
		WithArgs("follows").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("follower").AddRow("followee"))

	cols, err := TableColumns(db, "follows")
	require.NoError(t, err)
	assert.Equal(t, []string{"follower", "followee"}, cols)
	assert.NoError(t, mock.ExpectationsWereMet())
}
