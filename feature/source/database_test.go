package source

import (
	"context"
	"regexp"
	"testing"

	"netviz/core/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
)

func TestDatabase_LoadQuery(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := database.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}))
	require.NoError(t, err)

	query := "SELECT employee, manager, team FROM staff"
	mock.ExpectQuery(regexp.QuoteMeta(query)).WillReturnRows(
		sqlmock.NewRows([]string{"employee", "manager", "team"}).
			AddRow("ada", "grace", "compilers").
			AddRow("linus", "grace", nil).
			AddRow("grace", nil, "compilers"),
	)

	src := NewDatabase(db, map[string]string{"staff": query, "other": "SELECT 1"}, zap.NewNop())
	assert.Equal(t, []string{"other", "staff"}, src.Queries())

	snap, err := src.Load(context.Background(), "staff")
	require.NoError(t, err)
	assert.Equal(t, []string{"ada", "grace", "compilers", "linus"}, snap.Nodes.IDs())
	assert.Equal(t, []string{"ada->grace", "ada->compilers", "linus->grace", "grace->compilers"}, snap.Edges.IDs())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabase_UnknownQuery(t *testing.T) {
	src := NewDatabase(nil, map[string]string{}, nil)
	_, err := src.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownQuery)
}

func TestDatabase_QueryError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := database.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}))
	require.NoError(t, err)

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)
	_, err = NewDatabase(db, map[string]string{"q": "SELECT a FROM b"}, nil).Load(context.Background(), "q")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestDatabase_LoadTable(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE follows (follower TEXT, followee TEXT)").Error)
	require.NoError(t, db.Exec("INSERT INTO follows VALUES ('a', 'b'), ('a', 'c'), ('b', 'c')").Error)

	snap, err := NewDatabase(db, nil, nil).LoadTable(context.Background(), "follows")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, snap.Nodes.IDs())
	assert.Equal(t, 3, snap.Edges.Len())

	b, _ := snap.Nodes.Get("b")
	assert.Equal(t, "followee", b.Attrs["group"])
}
