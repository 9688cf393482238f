package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/biomark"
	"github.com/fwojciec/biomark/fs"
	"github.com/fwojciec/biomark/gemini"
	"github.com/fwojciec/biomark/goquery"
	biohttp "github.com/fwojciec/biomark/http"
	"github.com/fwojciec/biomark/mongo"
	"github.com/fwojciec/biomark/pipeline"
	"github.com/fwojciec/biomark/readability"
	"github.com/fwojciec/biomark/rod"
	bslog "github.com/fwojciec/biomark/slog"
	"github.com/fwojciec/biomark/sqlite"
	"github.com/fwojciec/biomark/trafilatura"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the sqlite record store.
	DB *sqlite.DB

	// MongoDB store, opened when --store=mongo.
	Mongo *mongo.RecordStore

	// Fetcher used by the pipeline, closed on exit.
	Fetcher biomark.Fetcher

	// Generator replaces the Gemini client when set. Used for end-to-end testing.
	Generator biomark.Generator
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Fetcher != nil {
		err = m.Fetcher.Close()
	}
	if m.Mongo != nil {
		if e := m.Mongo.Close(); e != nil && err == nil {
			err = e
		}
	}
	if m.DB != nil {
		if e := m.DB.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("biomark"),
		kong.Description("Extract protein biomarker records from research articles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars(kongVars),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) > 0 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	defer m.Close()

	switch kongCtx.Command() {
	case "records":
		if err := m.openSQLite(cli.DB); err != nil {
			return err
		}
		deps.Records = sqlite.NewRecordService(m.DB)
	default:
		if err := validator.New().Struct(cli.Run); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		driver, err := m.wireDriver(ctx, cli, deps.Logger, stderr)
		if err != nil {
			return err
		}
		deps.Driver = driver
	}

	return kongCtx.Run(deps)
}

func (m *Main) openSQLite(path string) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

// wireDriver builds the pipeline from the run flags.
func (m *Main) wireDriver(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (*pipeline.Driver, error) {
	cfg := cli.Run

	var store biomark.RecordStore
	switch cfg.Store {
	case "mongo":
		m.Mongo = mongo.NewRecordStore(cfg.MongoURI)
		if err := m.Mongo.Open(ctx); err != nil {
			fmt.Fprintln(stderr, "Hint: Check MONGO_URI or --mongo-uri")
			return nil, err
		}
		if err := m.Mongo.Ping(ctx); err != nil {
			logger.Warn("mongodb unreachable, records will only be written to files", "err", err)
		}
		store = m.Mongo
	default:
		if err := m.openSQLite(cli.DB); err != nil {
			return nil, err
		}
		store = sqlite.NewRecordService(m.DB)
	}

	extractor, err := newExtractor(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	switch cfg.Fetcher {
	case "browser":
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		m.Fetcher = f
	default:
		m.Fetcher = biohttp.NewFetcher(biohttp.WithTimeout(cfg.Timeout))
	}

	generator := m.Generator
	if generator == nil {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		generator = gemini.NewGenerator(client, cfg.Model)
	}

	d := &pipeline.Driver{
		Fetcher:   bslog.NewLoggingFetcher(m.Fetcher, logger),
		Extractor: extractor,
		Generator: pipeline.NewPacedGenerator(bslog.NewLoggingGenerator(generator, logger), cfg.Delay),
		Writer:    fs.NewRecordWriter(cfg.Out),
		Store:     bslog.NewLoggingRecordStore(store, logger),
		WorkDir:   fs.NewWorkDir(cfg.Data),
		Logger:    logger,
		BatchSize: cfg.BatchSize,
	}
	if cfg.RPS > 0 {
		d.Limiter = pipeline.NewDomainLimiter(cfg.RPS)
	}
	if cfg.Tokens {
		tc, err := gemini.NewTokenCounter(cfg.Model)
		if err != nil {
			logger.Warn("token counting disabled", "model", cfg.Model, "err", err)
		} else {
			d.Tokens = tc
		}
	}
	return d, nil
}

func newExtractor(name string) (biomark.Extractor, error) {
	switch name {
	case "text":
		return goquery.NewTextExtractor(), nil
	case "article":
		return trafilatura.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	default:
		return nil, biomark.Errorf(biomark.EINVALID, "unknown extractor %q", name)
	}
}
