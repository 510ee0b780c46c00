// Package postgres installs basen_encode and basen_decode SQL functions that
// produce exactly the strings the Go codec produces, so IDs can be rendered
// and parsed inside queries.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/paraglidehq/basen"
)

// Config holds the alphabet the SQL functions default to.
type Config struct {
	Alphabet string
}

// DefaultConfig returns a Config using basen.DefaultAlphabet.
func DefaultConfig() Config {
	return Config{Alphabet: basen.DefaultAlphabet}
}

// Validate reports whether the alphabet is usable by the codec.
func (c Config) Validate() error {
	_, err := basen.NewAlphabet(c.Alphabet)
	return err
}

var ErrConfigMismatch = errors.New("basen: database config does not match application config")

// Migrate runs the idempotent basen migration with the given configuration.
// If the database already has a different alphabet, returns ErrConfigMismatch.
func Migrate(ctx context.Context, db *sql.DB, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _basen_config (
			id int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			alphabet text NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("basen: create config table: %w", err)
	}

	var alphabet string
	err = db.QueryRowContext(ctx, `SELECT alphabet FROM _basen_config`).Scan(&alphabet)
	switch {
	case err == nil:
		if alphabet != cfg.Alphabet {
			return fmt.Errorf("%w: db has alphabet=%q, app has alphabet=%q",
				ErrConfigMismatch, alphabet, cfg.Alphabet)
		}
	case errors.Is(err, sql.ErrNoRows):
		_, err = db.ExecContext(ctx, `INSERT INTO _basen_config (alphabet) VALUES ($1)`, cfg.Alphabet)
		if err != nil {
			return fmt.Errorf("basen: insert config: %w", err)
		}
	default:
		return fmt.Errorf("basen: read config: %w", err)
	}

	if _, err = db.ExecContext(ctx, generateSQL(cfg)); err != nil {
		return fmt.Errorf("basen: run migrations: %w", err)
	}
	return nil
}

// GetConfig reads the basen configuration from the database.
func GetConfig(ctx context.Context, db *sql.DB) (Config, error) {
	var cfg Config
	err := db.QueryRowContext(ctx, `SELECT alphabet FROM _basen_config`).Scan(&cfg.Alphabet)
	return cfg, err
}

// generateSQL renders the function definitions. Arithmetic runs in numeric so
// negative bigints encode as their two's-complement value, like the Go codec.
func generateSQL(cfg Config) string {
	alphabet := pq.QuoteLiteral(cfg.Alphabet)

	return fmt.Sprintf(`
CREATE OR REPLACE FUNCTION basen_encode(value bigint, alphabet text DEFAULT %[1]s)
  RETURNS text
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  base int := char_length(alphabet);
  n numeric := value;
  result text := '';
BEGIN
  IF base < 2 THEN
    RAISE EXCEPTION 'basen: invalid alphabet: need at least 2 symbols';
  END IF;
  IF (SELECT count(DISTINCT s COLLATE "C") FROM regexp_split_to_table(alphabet, '') AS s) <> base THEN
    RAISE EXCEPTION 'basen: invalid alphabet: repeated symbol';
  END IF;
  IF n = 0 THEN
    RETURN substr(alphabet, 1, 1);
  END IF;
  IF n < 0 THEN
    n := n + 18446744073709551616;
  END IF;
  WHILE n > 0 LOOP
    result := substr(alphabet, (mod(n, base))::int + 1, 1) || result;
    n := div(n, base);
  END LOOP;
  RETURN result;
END;
$$;

CREATE OR REPLACE FUNCTION basen_decode(encoded text, alphabet text DEFAULT %[1]s)
  RETURNS bigint
  LANGUAGE plpgsql
  IMMUTABLE PARALLEL SAFE STRICT
  AS $$
DECLARE
  base int := char_length(alphabet);
  c text;
  p int;
  n numeric := 0;
BEGIN
  IF base < 2 THEN
    RAISE EXCEPTION 'basen: invalid alphabet: need at least 2 symbols';
  END IF;
  IF (SELECT count(DISTINCT s COLLATE "C") FROM regexp_split_to_table(alphabet, '') AS s) <> base THEN
    RAISE EXCEPTION 'basen: invalid alphabet: repeated symbol';
  END IF;
  IF char_length(encoded) = 0 THEN
    RAISE EXCEPTION 'basen: empty input';
  END IF;
  FOR i IN 1..char_length(encoded) LOOP
    c := substr(encoded, i, 1);
    p := strpos(alphabet, c);
    IF p = 0 THEN
      RAISE EXCEPTION 'basen: invalid symbol: %% at offset %%', c, i - 1;
    END IF;
    n := n * base + (p - 1);
    IF n >= 18446744073709551616 THEN
      RAISE EXCEPTION 'basen: value overflows 64 bits: %%', encoded;
    END IF;
  END LOOP;
  IF n >= 9223372036854775808 THEN
    n := n - 18446744073709551616;
  END IF;
  RETURN n::bigint;
END;
$$;
`, alphabet)
}
