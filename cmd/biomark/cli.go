package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/biomark"
	"github.com/fwojciec/biomark/gemini"
	"github.com/fwojciec/biomark/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Records biomark.RecordService
	Driver  *pipeline.Driver
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `default:"./biomarkers.db" env:"BIOMARK_DB" help:"SQLite database path"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Run     RunCmd     `cmd:"" default:"withargs" help:"Extract biomarker records from a list of article links (default)"`
	Records RecordsCmd `cmd:"" help:"List records stored in the SQLite database"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Links     string        `default:"pubmed_links.txt" help:"File with one article URL per line" validate:"required"`
	Data      string        `default:"./data" help:"Working folder for fetched markup and text" validate:"required"`
	Out       string        `default:"./json_responses" help:"Folder for JSON records" validate:"required"`
	BatchSize int           `default:"1" help:"Links processed per batch" validate:"min=1"`
	Delay     time.Duration `default:"5s" help:"Pause before and after each model call" validate:"gte=0"`
	RPS       float64       `name:"rps" default:"1" help:"Fetch requests per second per host (0 disables)" validate:"gte=0"`
	Timeout   time.Duration `default:"30s" help:"HTTP fetch timeout" validate:"gt=0"`
	Fetcher   string        `default:"http" enum:"http,browser" help:"Page fetcher (http or browser)" validate:"oneof=http browser"`
	Store     string        `default:"sqlite" enum:"sqlite,mongo" help:"Record store: sqlite (local JSON documents table) or mongo (Protein Biomarkers collection in the Biomarkers MongoDB database)" validate:"oneof=sqlite mongo"`
	MongoURI  string        `name:"mongo-uri" default:"mongodb://localhost:27017" env:"MONGO_URI" help:"MongoDB connection string" validate:"required_if=Store mongo"`
	Extractor string        `default:"text" enum:"text,article,readability" help:"Text extractor (text, article or readability)" validate:"oneof=text article readability"`
	Model     string        `default:"${model}" help:"Gemini model" validate:"required"`
	Tokens    bool          `help:"Log prompt token counts"`
}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Name  string `help:"Only show records for this article name"`
	Limit int    `short:"n" default:"20" help:"Maximum number of records to show"`
	Full  bool   `help:"Print the stored JSON for each record"`
}

// kongVars are interpolated into struct tags.
var kongVars = map[string]string{
	"model": gemini.DefaultModel,
}
