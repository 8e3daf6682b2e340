package main

// datatypes is a rule based type validation library for Go.
// Copyright (C) 2023 John Dudmesh

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.

// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/caarlos0/env/v11"
	"github.com/jdudmesh/pkg/datatypes"
	"github.com/jdudmesh/pkg/datatypes/schema"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type config struct {
	Schema   string `env:"TYPECHECK_SCHEMA"`
	Type     string `env:"TYPECHECK_TYPE"`
	Workers  int    `env:"TYPECHECK_WORKERS" envDefault:"4"`
	LogLevel string `env:"TYPECHECK_LOG_LEVEL" envDefault:"info"`
	MaxInput int64  `env:"TYPECHECK_MAX_INPUT" envDefault:"10485760"`
}

var errInvalid = errors.New("value is invalid")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	switch {
	case errors.Is(err, errInvalid):
		os.Exit(1)
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	// the .env file is optional
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	flags := flag.NewFlagSet("typecheck", flag.ContinueOnError)
	flags.StringVar(&cfg.Schema, "schema", cfg.Schema, "path to the schema file")
	flags.StringVar(&cfg.Type, "type", cfg.Type, "name of the type to validate against")
	batch := flags.Bool("batch", false, "input is a JSON array of values validated one by one")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if cfg.Schema == "" || cfg.Type == "" {
		return errors.New("both a schema and a type are required")
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	s, err := schema.LoadFile(cfg.Schema, schema.WithLogger(logger))
	if err != nil {
		return err
	}
	t, ok := s.Get(cfg.Type)
	if !ok {
		return fmt.Errorf("type %q not found in %s", cfg.Type, cfg.Schema)
	}

	input, err := readInput(stdin, cfg.MaxInput)
	if err != nil {
		return err
	}
	val, err := datatypes.DecodeJSON(input)
	if err != nil {
		return err
	}

	var results []datatypes.Errors
	if *batch {
		values, ok := val.([]any)
		if !ok {
			return errors.New("batch input must be a JSON array")
		}
		results, err = datatypes.ValidateAll(ctx, t, values, cfg.Workers)
		if err != nil {
			return err
		}
	} else {
		results = []datatypes.Errors{t.Validate(val)}
	}

	invalid := 0
	enc := json.NewEncoder(stdout)
	for _, res := range results {
		if res != nil {
			invalid++
		}
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
	}

	logger.Info("validation complete",
		zap.String("type", cfg.Type),
		zap.Int("values", len(results)),
		zap.Int("invalid", invalid))

	if invalid > 0 {
		return errInvalid
	}
	return nil
}

// readInput reads at most max bytes; one byte more means the input was too
// large.
func readInput(r io.Reader, max int64) ([]byte, error) {
	input, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if int64(len(input)) > max {
		return nil, fmt.Errorf("input exceeds %d bytes: %w", max, datatypes.ErrBodyTooLarge)
	}
	return input, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
