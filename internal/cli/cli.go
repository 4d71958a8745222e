package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/babarot/wrm/internal/config"
	"github.com/babarot/wrm/internal/env"
	"github.com/babarot/wrm/internal/ledger"
	"github.com/babarot/wrm/internal/trash"
	"github.com/babarot/wrm/internal/utils/debug"
	"github.com/babarot/wrm/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

var ErrIncorrectArguments = errors.New("incorrect arguments: give files, or use --clean or --list")

type Option struct {
	Clean          bool `short:"c" long:"clean" description:"Delete all files and directories in trash permanently"`
	Delete         bool `short:"d" long:"delete" description:"Delete files or directories"`
	List           bool `short:"l" long:"list" description:"List all files and directories in trash"`
	Restore        bool `short:"r" long:"restore" description:"Restore files or directories in trash to where they came from"`
	Noninteractive bool `short:"n" long:"noninteractive" description:"Do not prompt before every action"`
	Quiet          bool `short:"q" long:"quiet" description:"Do not explain what is being done"`

	Config string     `long:"config" description:"Path to config file" default:""`
	Meta   MetaOption `group:"Meta Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string
	engine  *trash.Engine

	stdin  *bufio.Reader
	stdout io.Writer
	stderr io.Writer
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[OPTIONS] [file...]"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if opt.Meta.Version {
		fmt.Fprint(os.Stdout, v.Print())
		return nil
	}

	// config parsing logs too; hold its records until the log file is known
	pending := bootstrapLogger()

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}
	closeLog := setupLogger(cfg.Logging, pending)
	defer closeLog()

	defer slog.Debug("main function finished")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	switch opt.Meta.Debug {
	case "live":
		return debug.Logs(os.Stdout, env.WRM_LOG_PATH, cfg.Logging.Enabled, true)
	case "full":
		return debug.Logs(os.Stdout, env.WRM_LOG_PATH, cfg.Logging.Enabled, false)
	}

	if !opt.Clean && !opt.List && len(args) == 0 {
		parser.WriteHelp(os.Stderr)
		return ErrIncorrectArguments
	}

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	cli := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		runID:   runID(),
		engine:  engine,
		stdin:   bufio.NewReader(os.Stdin),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	if err := cli.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func bootstrapLogger() *bytes.Buffer {
	var buf bytes.Buffer
	log.New(
		log.UseOutput(&buf),
		log.UseLevel(log.DebugLevel),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseAttrs("run_id", runID()),
		log.AsDefault(),
	)
	return &buf
}

// setupLogger opens the rotating log file once, replays the records
// buffered in pending into it and installs the default logger. The
// returned func closes the file.
func setupLogger(cfg config.Logging, pending *bytes.Buffer) func() {
	if !cfg.Enabled {
		slog.SetDefault(log.Discard())
		return func() {}
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	var file *log.RotateWriter
	log.New(
		log.UseOutput(io.Discard),
		log.UseOutputFunc(func() (io.Writer, error) {
			w, err := log.NewRotateWriter(env.WRM_LOG_PATH, cfg.Rotation.MaxSize, cfg.Rotation.MaxFiles)
			if err != nil {
				return nil, err
			}
			if pending != nil {
				_, _ = pending.WriteTo(w)
			}
			file = w
			return w, nil
		}),
		log.UseLevel(level),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseAttrs("run_id", runID()),
		log.AsDefault(),
	)

	return func() {
		if file != nil {
			_ = file.Close()
		}
	}
}

// newEngine builds the trash configuration once, bootstraps the base
// directory and hands both to the engine.
func newEngine(cfg config.Config) (*trash.Engine, error) {
	dir, err := cfg.BaseDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	trashConfig := trash.NewConfig(dir)
	trashConfig.Protect = trash.ProtectOptions{
		Names:    cfg.Core.Protect.Names,
		Patterns: cfg.Core.Protect.Patterns,
		Globs:    cfg.Core.Protect.Globs,
	}

	store := ledger.NewOsStore(trashConfig.LedgerPath)
	if err := trash.Prepare(trashConfig, store); err != nil {
		return nil, err
	}

	engine, err := trash.NewEngine(trashConfig, trash.WithStore(store))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize trash: %w", err)
	}
	slog.Debug("trash ready", "dir", trashConfig.Dir, "trash", trashConfig.TrashDir, "ledger", trashConfig.LedgerPath)
	return engine, nil
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.Clean:
		return c.Clean()
	case c.option.List:
		return c.List()
	case c.option.Delete:
		return c.each(trash.KindDelete, args)
	case c.option.Restore:
		return c.each(trash.KindRestore, args)
	default:
		return c.each(trash.KindRemove, args)
	}
}

func (c CLI) noninteractive() bool {
	return c.option.Noninteractive || c.config.Core.Noninteractive
}

func (c CLI) quiet() bool {
	return c.option.Quiet || c.config.Core.Quiet
}
