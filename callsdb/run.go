package callsdb

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"adifc/common"
	"adifc/state"
)

// Run is the callsdb subcommand action.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("callsdb")

	if cmd.Args().Len() > 1 {
		return fmt.Errorf("%w: at most one SOURCE expected, got %d argument(s)", common.ErrUsage, cmd.Args().Len())
	}
	src := cmd.Args().First()
	if len(src) == 0 {
		src = env.Cfg.CallsDB.URL
	}
	dbName := cmd.String("db")
	if len(dbName) == 0 {
		dbName = env.Cfg.CallsDB.Database
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("database", dbName))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if IsURL(src) {
		name, err := Fetch(ctx, nil, src, "", log)
		if err != nil {
			return err
		}
		defer os.Remove(name)
		src = name
	}

	db, err := Open(dbName, env.Cfg.CallsDB.Table)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	n, err := Build(ctx, src, db, log)
	if err != nil {
		return fmt.Errorf("unable to build call sign database: %w", err)
	}
	log.Info("Call sign database created", zap.String("database", dbName), zap.String("table", env.Cfg.CallsDB.Table), zap.Int("rows", n))
	return nil
}

// RunLookup is the state subcommand action. It prints tab separated call sign
// and state for every argument, unknown call signs get "?".
func RunLookup(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("state")

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("%w: at least one CALL expected", common.ErrUsage)
	}
	dbName := cmd.String("db")
	if len(dbName) == 0 {
		dbName = env.Cfg.CallsDB.Database
	}
	if _, err := os.Stat(dbName); err != nil {
		return fmt.Errorf("call sign database is not available, build it with callsdb command: %w", err)
	}

	db, err := OpenReadOnly(dbName, env.Cfg.CallsDB.Table)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, db.Close())
	}()

	out := cmd.Root().Writer
	for _, call := range cmd.Args().Slice() {
		st, err := db.Lookup(call)
		switch {
		case errors.Is(err, ErrNotFound):
			log.Warn("Unknown call sign", zap.String("call", call))
			st = "?"
		case err != nil:
			return err
		}
		fmt.Fprintf(out, "%s\t%s\n", strings.ToUpper(call), st)
	}
	return nil
}
