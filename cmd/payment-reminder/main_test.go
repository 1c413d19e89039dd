package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"payment-reminder/internal/common/database"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRetryWithBackoff(t *testing.T) {
	log := zaptest.NewLogger(t)

	t.Run("succeeds after transient failures", func(t *testing.T) {
		attempts := 0
		err := retryWithBackoff(func() error {
			attempts++
			if attempts < 3 {
				return errors.New("connection refused")
			}
			return nil
		}, 5, time.Millisecond, log, "test op")

		require.NoError(t, err)
		assert.Equal(t, 3, attempts)
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		attempts := 0
		err := retryWithBackoff(func() error {
			attempts++
			return errors.New("connection refused")
		}, 3, time.Millisecond, log, "test op")

		require.Error(t, err)
		assert.Equal(t, 3, attempts)
		assert.Contains(t, err.Error(), "test op failed after 3 attempts")
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestConnectPostgres_ClosesPoolAfterFailedPing(t *testing.T) {
	failing, failingMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	failingMock.ExpectPing().WillReturnError(errors.New("connection refused"))
	failingMock.ExpectClose()

	healthy, healthyMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer healthy.Close()
	healthyMock.ExpectPing()

	pools := []*database.PostgresClient{
		database.NewPostgresFromDB(failing),
		database.NewPostgresFromDB(healthy),
	}
	opened := 0
	open := func() (*database.PostgresClient, error) {
		pg := pools[opened]
		opened++
		return pg, nil
	}

	pg, err := connectPostgres(context.Background(), open, 3, time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.Equal(t, 2, opened)
	assert.Same(t, pools[1], pg)
	assert.NoError(t, failingMock.ExpectationsWereMet(), "failed pool must be closed")
	assert.NoError(t, healthyMock.ExpectationsWereMet())
}

func TestConnectPostgres_GivesUp(t *testing.T) {
	var mocks []sqlmock.Sqlmock
	open := func() (*database.PostgresClient, error) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
		mock.ExpectClose()
		mocks = append(mocks, mock)
		return database.NewPostgresFromDB(db), nil
	}

	pg, err := connectPostgres(context.Background(), open, 2, time.Millisecond, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Nil(t, pg)

	require.Len(t, mocks, 2)
	for _, mock := range mocks {
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())

	send, _, err := root.Find([]string{"send"})
	require.NoError(t, err)
	for _, name := range []string{"member-id", "member-name", "member-email", "payment-status"} {
		assert.NotNil(t, send.Flags().Lookup(name), name)
	}
	assert.Equal(t, "Pending", send.Flags().Lookup("payment-status").DefValue)
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestSendCommand_RequiresEmail(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"send", "--member-id", "m1"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "member-email")
}
