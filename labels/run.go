package labels

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"adifc/common"
	"adifc/config"
	"adifc/layout"
	"adifc/source"
	"adifc/state"
	"adifc/utils/debug"
	"adifc/utils/output"
)

// Run is the labels subcommand action.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Logger("labels")

	if cmd.Args().Len() != 1 {
		return fmt.Errorf("%w: exactly one SOURCE expected, got %d argument(s)", common.ErrUsage, cmd.Args().Len())
	}
	src := cmd.Args().First()

	format := env.Cfg.Labels.Format
	if to := cmd.String("to"); len(to) > 0 {
		f, err := common.ParseLabelsFmt(to)
		if err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Stringer("format", format), zap.Error(err))
		} else {
			format = f
		}
	}

	base := cmd.String("output")
	if len(base) == 0 {
		base = config.SafeFileName(env.Cfg.Labels.OutputName)
	}
	base = strings.TrimSuffix(base, format.Ext())

	env.Overwrite = cmd.Bool("overwrite")

	if cp := cmd.String("force-cp"); len(cp) > 0 {
		enc, err := source.CodePage(cp)
		if err != nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cp), zap.Error(err))
		} else {
			env.CodePage = enc
			log.Debug("Forcefully decoding non UTF-8 input", zap.String("charset", cp))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, env, src, base, format, log)
}

// process handles label sheet creation independently of CLI framework.
func process(ctx context.Context, env *state.LocalEnv, src, base string, format common.LabelsFmt, log *zap.Logger) error {
	in, err := source.Read(ctx, src, env.CodePage, log)
	if err != nil {
		return err
	}
	log.Debug("Log loaded", zap.String("file", in.Path), zap.String("charset", in.Charset), zap.Int("size", len(in.Raw)))
	env.Rpt.StoreData("input/"+in.Name, in.Raw)

	b, err := NewBuilder(env.Cfg.Labels.Template)
	if err != nil {
		return err
	}

	sel, err := Select(ctx, in.Text, env.Cfg.Labels.Filter.Criteria(), b, log)
	if errors.Is(err, ErrNoMatches) {
		log.Info("No QSOs matched the filter criteria.", zap.Int("records", sel.Total))
		return nil
	}
	if err != nil {
		return err
	}
	log.Debug("QSOs selected", zap.Int("records", sel.Total), zap.Int("accepted", len(sel.Labels)))

	if env.Rpt != nil {
		tw := debug.NewTreeWriter()
		for i, r := range sel.Records {
			tw.Line(0, "QSO %d: %s", i+1, strings.Join(sel.Labels[i], " | "))
			r.Dump(tw, 1)
		}
		env.Rpt.StoreData("selected.txt", []byte(tw.String()))
	}

	g := env.Cfg.Labels.Geometry.Layout()
	doc := Document{
		Title:   "QSL labels",
		Subject: fmt.Sprintf("%s (run %s)", in.Name, env.RunID),
		Font:    env.Cfg.Labels.Font,
	}

	var sh sheet
	switch format {
	case common.LabelsFmtPdf:
		sh = newPDFSheet(g, doc)
	case common.LabelsFmtXlsx:
		if sh, err = newXLSXSheet(g, doc); err != nil {
			return err
		}
	case common.LabelsFmtPng:
		sh = newPNGSheet(g, doc, env.Cfg.Labels.PNGDPI)
	default:
		return fmt.Errorf("unsupported labels format %s", format)
	}

	pages, err := layout.Render(ctx, g, sel.Labels, sh)
	if err != nil {
		return fmt.Errorf("unable to lay out labels: %w", err)
	}

	parts, err := sh.Parts()
	if err != nil {
		return err
	}
	// refuse early so multi file output is never left half written
	for _, p := range parts {
		if err := output.Check(base+p.Suffix, env.Overwrite); err != nil {
			return err
		}
	}
	for _, p := range parts {
		name := base + p.Suffix
		if err := output.Write(name, env.Overwrite, p.Write); err != nil {
			return fmt.Errorf("unable to write labels: %w", err)
		}
		env.Rpt.Store("result/"+filepath.Base(name), name)
		log.Info("Labels written", zap.String("file", name))
	}
	log.Info("Labels created", zap.Int("labels", len(sel.Labels)), zap.Int("pages", pages))
	return nil
}
