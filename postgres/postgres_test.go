package postgres_test

import (
	"context"
	"database/sql"
	"math"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/paraglidehq/basen"
	"github.com/paraglidehq/basen/postgres"
)

func setupPostgres(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		tcpostgres.BasicWaitStrategies(),
		testcontainers.CustomizeRequestOption(func(req *testcontainers.GenericContainerRequest) error {
			req.ContainerRequest.WaitingFor = wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second)
			return nil
		}),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err, "failed to open database")

	cleanup := func() {
		db.Close()
		container.Terminate(ctx)
	}
	return db, cleanup
}

func TestMigrate(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	cfg := postgres.DefaultConfig()

	require.NoError(t, postgres.Migrate(ctx, db, cfg), "first migration")
	require.NoError(t, postgres.Migrate(ctx, db, cfg), "second migration should be idempotent")

	stored, err := postgres.GetConfig(ctx, db)
	require.NoError(t, err)
	require.Equal(t, cfg, stored)
}

func TestMigrateConfigMismatch(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, db, postgres.DefaultConfig()))

	err := postgres.Migrate(ctx, db, postgres.Config{Alphabet: "0123456789ABCDEF"})
	require.ErrorIs(t, err, postgres.ErrConfigMismatch)
}

func TestMigrateInvalidAlphabet(t *testing.T) {
	// rejected before touching the database
	err := postgres.Migrate(context.Background(), nil, postgres.Config{Alphabet: "00"})
	require.ErrorIs(t, err, basen.ErrInvalidAlphabet)
}

func TestEncodingMatchesGo(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, db, postgres.DefaultConfig()))

	values := []int64{0, 1, 61, 62, 255, 1234567890123456789, math.MaxInt64, -1, math.MinInt64}
	alphabets := []string{"01", "0123456789ABCDEF", "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"}

	for _, v := range values {
		var encoded string
		require.NoError(t, db.QueryRowContext(ctx, "SELECT basen_encode($1)", v).Scan(&encoded))
		require.Equal(t, basen.Encode(v), encoded, "default alphabet, value %d", v)

		var decoded int64
		require.NoError(t, db.QueryRowContext(ctx, "SELECT basen_decode($1)", encoded).Scan(&decoded))
		require.Equal(t, v, decoded)

		for _, alphabet := range alphabets {
			want, err := basen.EncodeWith(v, alphabet)
			require.NoError(t, err)
			require.NoError(t, db.QueryRowContext(ctx, "SELECT basen_encode($1, $2)", v, alphabet).Scan(&encoded))
			require.Equal(t, want, encoded, "alphabet %q, value %d", alphabet, v)

			require.NoError(t, db.QueryRowContext(ctx, "SELECT basen_decode($1, $2)", encoded, alphabet).Scan(&decoded))
			require.Equal(t, v, decoded)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, db, postgres.DefaultConfig()))

	inputs := []struct {
		name     string
		encoded  string
		alphabet string
	}{
		{"InvalidSymbol", "!", "01"},
		{"Empty", "", "01"},
		{"Overflow", "zzzzzzzzzzzz", basen.DefaultAlphabet},
		{"InvalidAlphabet", "0", "0"},
		{"RepeatedSymbol", "1", "11"},
		{"RepeatedWideSymbol", "β", "αββ"},
	}
	for _, tt := range inputs {
		t.Run(tt.name, func(t *testing.T) {
			var n int64
			err := db.QueryRowContext(ctx, "SELECT basen_decode($1, $2)", tt.encoded, tt.alphabet).Scan(&n)
			require.Error(t, err)

			_, goErr := basen.DecodeWith(tt.encoded, tt.alphabet)
			require.Error(t, goErr, "Go codec should reject the same input")
		})
	}
}

func TestEncodeErrors(t *testing.T) {
	db, cleanup := setupPostgres(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, postgres.Migrate(ctx, db, postgres.DefaultConfig()))

	for _, alphabet := range []string{"0", "aa", "0120"} {
		var s string
		err := db.QueryRowContext(ctx, "SELECT basen_encode($1, $2)", 1, alphabet).Scan(&s)
		require.Error(t, err, "alphabet %q", alphabet)

		_, goErr := basen.EncodeWith(1, alphabet)
		require.ErrorIs(t, goErr, basen.ErrInvalidAlphabet)
	}
}
