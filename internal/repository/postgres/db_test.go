package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// recordingDriver observes transaction outcomes without a real database.
type recordingDriver struct {
	lastConn *recordingConn
}

type recordingConn struct {
	committed  bool
	rolledBack bool
}

type recordingTx struct {
	conn *recordingConn
}

func (d *recordingDriver) Open(string) (driver.Conn, error) {
	d.lastConn = &recordingConn{}
	return d.lastConn, nil
}

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	return &recordingTx{conn: c}, nil
}

func (t *recordingTx) Commit() error {
	t.conn.committed = true
	return nil
}

func (t *recordingTx) Rollback() error {
	t.conn.rolledBack = true
	return nil
}

var txRecorder = &recordingDriver{}

func init() {
	sql.Register("txrecorder", txRecorder)
}

func newRecordedDB(t *testing.T) *DB {
	t.Helper()
	raw, err := sql.Open("txrecorder", "")
	require.NoError(t, err)
	db := Wrap(sqlx.NewDb(raw, "txrecorder"))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWithTxCommitsOnSuccess(t *testing.T) {
	db := newRecordedDB(t)

	ran := false
	err := db.WithTx(context.Background(), func(tx *sql.Tx) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	require.True(t, ran)
	require.True(t, txRecorder.lastConn.committed)
	require.False(t, txRecorder.lastConn.rolledBack)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := newRecordedDB(t)

	boom := errors.New("boom")
	err := db.WithTx(context.Background(), func(tx *sql.Tx) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.True(t, txRecorder.lastConn.rolledBack)
	require.False(t, txRecorder.lastConn.committed)
}

func TestWithTxRespectsCancelledContext(t *testing.T) {
	db := newRecordedDB(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := db.WithTx(ctx, func(tx *sql.Tx) error { return nil })
	require.Error(t, err)
}
