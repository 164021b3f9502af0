// Package pota rewrites activation log into the reduced form accepted by Parks
// on the Air log upload.
package pota

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"adifc/adif"
	"adifc/common"
	"adifc/config"
	"adifc/source"
	"adifc/state"
	"adifc/utils/output"
)

// Run is the pota subcommand action.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("pota")

	if cmd.Args().Len() != 2 {
		return fmt.Errorf("%w: SOURCE and SIG_INFO expected, got %d argument(s)", common.ErrUsage, cmd.Args().Len())
	}
	src, sigInfo := cmd.Args().Get(0), cmd.Args().Get(1)
	if len(strings.TrimSpace(sigInfo)) == 0 {
		log.Warn("Empty park reference, MY_SIG_INFO will have no value")
	}

	format := env.Cfg.Pota.Format
	if to := cmd.String("to"); len(to) > 0 {
		f, err := common.ParseLogFmt(to)
		if err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Stringer("format", format), zap.Error(err))
		} else {
			format = f
		}
	}

	dst := cmd.String("output")
	if len(dst) == 0 {
		// configured name follows requested format
		dst = config.SafeFileName(env.Cfg.Pota.Output)
		dst = strings.TrimSuffix(dst, filepath.Ext(dst)) + format.Ext()
	}

	env.Overwrite = cmd.Bool("overwrite")

	if cp := cmd.String("force-cp"); len(cp) > 0 {
		enc, err := source.CodePage(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			env.CodePage = enc
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return Process(ctx, env, src, sigInfo, dst, format, log)
}

// Process rewrites log from src into dst keeping only allowed fields and
// marking every QSO with activity program and reference. Log without header
// is rejected and nothing is written.
func Process(ctx context.Context, env *state.LocalEnv, src, sigInfo, dst string, format common.LogFmt, log *zap.Logger) error {
	in, err := source.Read(ctx, src, env.CodePage, log)
	if err != nil {
		return err
	}
	env.Rpt.StoreData("input/"+in.Name, in.Raw)

	l, err := adif.ParseLog(ctx, in.Text)
	if err != nil {
		return fmt.Errorf("unable to parse log (%s): %w", in.Path, err)
	}
	log.Debug("Log parsed", zap.String("charset", in.Charset), zap.Int("records", len(l.Entries)))

	out := l.Project(env.Cfg.Pota.Fields, env.Cfg.Pota.Sig, sigInfo)

	var write func(io.Writer) (int64, error)
	switch format {
	case common.LogFmtAdi:
		write = out.WriteTo
	case common.LogFmtAdx:
		write = out.WriteADX
	default:
		return fmt.Errorf("unsupported log format %s", format)
	}

	if err := output.Write(dst, env.Overwrite, func(w io.Writer) error {
		_, err := write(w)
		return err
	}); err != nil {
		return fmt.Errorf("unable to save processed log: %w", err)
	}
	env.Rpt.Store("result/"+filepath.Base(dst), dst)

	log.Info("Processed ADIF saved", zap.String("file", dst), zap.Int("records", len(out.Entries)))
	return nil
}
