// Command basen encodes and decodes int64 values, serves the codec and an ID
// issuer over HTTP and installs the SQL codec functions.
//
//	basen [-config file] [-alphabet symbols] encode <int64>...
//	basen [-config file] [-alphabet symbols] decode <text>...
//	basen [-config file] serve
//	basen [-config file] migrate
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/paraglidehq/basen"
	"github.com/paraglidehq/basen/internal/config"
	"github.com/paraglidehq/basen/internal/httpapi"
	"github.com/paraglidehq/basen/internal/logging"
	"github.com/paraglidehq/basen/postgres"
	"github.com/paraglidehq/basen/shortid"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default: ./basen.yaml if present)")
	alphabetFlag := flag.String("alphabet", "", "alphabet to use instead of codec.alphabet")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "basen:", err)
		os.Exit(1)
	}
	if *alphabetFlag != "" {
		cfg.Codec.Alphabet = *alphabetFlag
	}

	logger := logging.New(logging.Config{
		Level:   cfg.Log.Level,
		Pretty:  cfg.Log.Pretty,
		Service: "basen",
	})

	alphabet, err := basen.NewAlphabet(cfg.Codec.Alphabet)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid alphabet")
	}

	args := flag.Args()[1:]
	switch cmd := flag.Arg(0); cmd {
	case "encode":
		err = encode(os.Stdout, alphabet, args)
	case "decode":
		err = decode(os.Stdout, alphabet, args)
	case "serve":
		err = serve(cfg, alphabet, logger)
	case "migrate":
		err = migrate(cfg, logger)
	default:
		fmt.Fprintf(os.Stderr, "basen: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: basen [flags] encode <int64>... | decode <text>... | serve | migrate")
	flag.PrintDefaults()
}

func encode(w io.Writer, a *basen.Alphabet, args []string) error {
	for _, arg := range args {
		v, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("encode %q: %w", arg, err)
		}
		fmt.Fprintln(w, a.Encode(v))
	}
	return nil
}

func decode(w io.Writer, a *basen.Alphabet, args []string) error {
	for _, arg := range args {
		v, err := a.Decode(arg)
		if err != nil {
			return fmt.Errorf("decode %q: %w", arg, err)
		}
		fmt.Fprintln(w, v)
	}
	return nil
}

func serve(cfg *config.Config, a *basen.Alphabet, logger zerolog.Logger) error {
	ids := shortid.NewIssuer(shortid.NewSequence(shortid.ID(cfg.IDs.Start)), cfg.IDs.Codec())
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           httpapi.NewRouter(httpapi.NewHandler(a, ids), logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("alphabet", a.String()).
			Str("id_format", cfg.IDs.Format).
			Int64("id_start", cfg.IDs.Start).
			Msg("http server listening")
		errc <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case <-quit:
	}

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info().Msg("stopped")
	return nil
}

func migrate(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.Database.DSN == "" {
		return errors.New("database.dsn is not set")
	}
	db, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := postgres.Migrate(ctx, db, postgres.Config{Alphabet: cfg.Codec.Alphabet}); err != nil {
		return err
	}
	logger.Info().Str("alphabet", cfg.Codec.Alphabet).Msg("sql codec functions installed")
	return nil
}
