// Command gpterm is an interactive chat client for streaming chat
// endpoints: OpenAI-compatible servers, Gemini and Anthropic.
//
// Usage:
//
//	API_KEY=sk-...           gpterm [flags]
//	GEMINI_API_KEY=gk-...    gpterm --provider gemini [flags]
//	ANTHROPIC_API_KEY=ak-... gpterm --provider anthropic [flags]
//
// Settings resolve flag first, then environment, then the config file at
// $XDG_CONFIG_HOME/gpterm/config.toml, then built-in defaults. Run
// "gpterm --help" for the full flag list.
//
// The exit status is 0 on a normal exit and when the server reports an
// error, and 1 when a response cannot be decoded or startup fails.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/gpterm/gpterm"
	bt "github.com/gpterm/gpterm/bubbletea"
	gptermjson "github.com/gpterm/gpterm/json"
	"github.com/gpterm/gpterm/logfile"
	"github.com/gpterm/gpterm/terminal"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil && !gpterm.IsFatal(err) {
		fmt.Fprintf(os.Stderr, "gpterm: %v\n", err)
	}
	os.Exit(gpterm.ExitCode(err))
}

func newApp() *cli.App {
	return &cli.App{
		Name:   "gpterm",
		Usage:  "Chat with a language model from the terminal",
		Flags:  flags(),
		Action: run,
	}
}

func run(c *cli.Context) error {
	cfg, err := resolveConfig(c, os.LookupEnv)
	if err != nil {
		return err
	}

	logDir := cfg.LogDir
	if logDir == "" {
		if logDir, err = logfile.DefaultDir(); err != nil {
			return err
		}
	}

	logger, closeLogger, err := newLogger(c.Bool("debug"), logDir)
	if err != nil {
		return err
	}
	defer closeLogger()

	// SIGINT is left alone: it drives the cancellation gate.
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGTERM)
	defer stop()

	provider, err := resolveProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}

	sessionPath := c.String("session")
	session, err := loadOrCreateSession(sessionPath, cfg.SystemPrompt, time.Now())
	if err != nil {
		return err
	}

	gate := gpterm.NewGate()
	chat := gpterm.NewChat(provider, gate,
		gpterm.WithModel(cfg.ModelName()),
		gpterm.WithTemperature(cfg.Temperature),
		gpterm.WithTypingDelay(cfg.Delay()),
		gpterm.WithLogger(logger.Named("chat")),
	)
	relay := &gpterm.Relay{
		Chat:           chat,
		Policy:         cfg.Policy(),
		ConversationID: gpterm.DefaultConversationID,
	}
	banner := terminal.Banner{Model: cfg.ModelName(), Context: cfg.Context}
	if cfg.History {
		relay.Log = logfile.New(logDir)
		banner.LogDir = logDir
	}

	theme := gpterm.DefaultTheme()
	printer := terminal.NewPrinter(os.Stdout, os.Stderr, theme)
	logger.Debug("starting",
		zap.String("provider", cfg.Provider),
		zap.String("model", cfg.ModelName()),
		zap.String("session", session.ID),
		zap.Bool("context", cfg.Context),
		zap.Bool("history", cfg.History),
	)

	if c.Bool("plain") || !isTerminal() {
		historyPath := ""
		if cfg.History {
			historyPath = logfile.HistoryPath(logDir)
		}
		err = runPlain(ctx, relay, &session, printer, banner, historyPath, logger)
	} else {
		err = runTUI(ctx, relay, &session, printer, banner, logger)
	}

	if saveErr := saveSession(sessionPath, cfg.History, logDir, session); saveErr != nil {
		logger.Warn("save session", zap.Error(saveErr))
		if err == nil {
			err = saveErr
		}
	}
	return err
}

func runPlain(ctx context.Context, relay *gpterm.Relay, session *gpterm.Session, printer *terminal.Printer, banner terminal.Banner, historyPath string, logger *zap.Logger) error {
	relay.OnLogError = printer.LogError

	input := terminal.NewLineReader(historyPath)
	defer input.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)
	go terminal.HandleInterrupts(ctx, sigs, relay.Chat.Gate(), func() {
		printer.EndReply()
		input.Close()
		os.Exit(0)
	})

	printer.Banner(banner)
	repl := &terminal.REPL{
		Input:   input,
		Relay:   relay,
		Session: session,
		Printer: printer,
		Logger:  logger.Named("repl"),
	}
	return repl.Run(ctx)
}

func runTUI(ctx context.Context, relay *gpterm.Relay, session *gpterm.Session, printer *terminal.Printer, banner terminal.Banner, logger *zap.Logger) error {
	// The full-screen UI owns the terminal, so log failures go to the
	// debug log instead.
	relay.OnLogError = func(err error) {
		logger.Warn("conversation log", zap.Error(err))
	}

	turn := func(ctx context.Context, input string, sink gpterm.Sink) (gpterm.TurnResult, error) {
		return relay.Send(ctx, session, input, sink)
	}
	model := bt.New(turn, relay.Chat.Gate(), gpterm.DefaultTheme(),
		bt.WithIntro(banner.Lines()...),
		bt.WithHistory(session.Transcript.Messages),
		bt.WithModelName(banner.Model),
	)
	err := bt.Run(ctx, model)
	if gpterm.IsFatal(err) {
		// The alternate screen is gone; repeat the error where it stays visible.
		printer.Error(err)
	}
	return err
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// newLogger returns a JSON debug logger writing to <logDir>/debug.log, or a
// no-op logger when debug is off.
func newLogger(debug bool, logDir string) (*zap.Logger, func(), error) {
	if !debug {
		return zap.NewNop(), func() {}, nil
	}
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(logDir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		NameKey:     "logger",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
		EncodeName:  zapcore.FullNameEncoder,
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(f), zapcore.DebugLevel)
	logger := zap.New(core).With(zap.Int("pid", os.Getpid()))
	return logger, func() {
		_ = logger.Sync()
		f.Close()
	}, nil
}

// loadOrCreateSession resumes the session at path, or starts a new one when
// path is empty or does not exist yet.
func loadOrCreateSession(path, systemPrompt string, now time.Time) (gpterm.Session, error) {
	if path != "" {
		s, err := gptermjson.Load(path)
		switch {
		case err == nil:
			return s, nil
		case !errors.Is(err, os.ErrNotExist):
			return gpterm.Session{}, fmt.Errorf("load session: %w", err)
		}
	}
	return gpterm.Session{
		ID:           uuid.NewString(),
		SystemPrompt: systemPrompt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// saveSession writes the session to path, or into the log directory when
// no path was given and history is enabled. Empty sessions are not saved.
func saveSession(path string, history bool, logDir string, s gpterm.Session) error {
	if s.Transcript.Len() == 0 {
		return nil
	}
	if path == "" {
		if !history {
			return nil
		}
		path = filepath.Join(logDir, "sessions", s.ID+".json")
	}
	if err := gptermjson.Save(path, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
