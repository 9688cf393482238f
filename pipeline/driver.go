// Package pipeline drives links through download, conversion, extraction
// and cleanup in fixed-size batches.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fwojciec/biomark"
	"github.com/fwojciec/biomark/bloom"
)

// DefaultBatchSize is the number of links processed per batch.
const DefaultBatchSize = 1

// Bloom filter configuration for duplicate link detection.
const (
	duplicateFalsePositiveRate = 0.001
	minExpectedLinks           = 100
)

// Driver processes links through the extraction pipeline.
type Driver struct {
	Fetcher   biomark.Fetcher
	Extractor biomark.Extractor
	Generator biomark.Generator
	Writer    biomark.RecordWriter
	Store     biomark.RecordStore
	WorkDir   biomark.WorkDir

	// Limiter, if set, is waited on before every fetch, keyed by host.
	Limiter biomark.DomainLimiter

	// Tokens, if set, counts prompt tokens for debug logging.
	Tokens biomark.TokenCounter

	Logger    *slog.Logger
	BatchSize int
}

// Result holds the outcome of a run.
type Result struct {
	Links      int
	Fetched    int
	Converted  int
	Saved      int
	Inserted   int
	Failed     int
	Duplicates int
}

// Run processes links batch by batch. Every failure is logged and counted
// against its link; the run continues with the next one. Run returns an
// error only when ctx is canceled, in which case the partial result is
// returned along with the context error.
func (d *Driver) Run(ctx context.Context, links []biomark.Link) (*Result, error) {
	logger := d.logger()
	res := &Result{Links: len(links)}

	res.Duplicates = d.checkDuplicates(links)

	size := d.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}

	for i, batch := range biomark.Batches(links, size) {
		if err := ctx.Err(); err != nil {
			d.logFinished(res)
			return res, err
		}
		logger.Debug("batch started", "batch", i+1, "links", len(batch))

		err := d.runBatch(ctx, batch, res)

		if cerr := d.WorkDir.Cleanup(); cerr != nil {
			logger.Error("cleanup failed", "batch", i+1, "err", cerr)
		}
		if err != nil {
			d.logFinished(res)
			return res, err
		}
	}

	d.logFinished(res)
	return res, nil
}

// runBatch returns an error only if ctx is done.
func (d *Driver) runBatch(ctx context.Context, batch []biomark.Link, res *Result) error {
	raws, err := d.download(ctx, batch, res)
	if err != nil {
		return err
	}
	texts, err := d.convert(ctx, raws, res)
	if err != nil {
		return err
	}
	return d.extract(ctx, texts, res)
}

func (d *Driver) download(ctx context.Context, batch []biomark.Link, res *Result) ([]*biomark.RawDocument, error) {
	logger := d.logger()
	docs := make([]*biomark.RawDocument, 0, len(batch))

	for _, link := range batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if d.Limiter != nil {
			if u, err := url.Parse(link.URL); err == nil && u.Host != "" {
				if err := d.Limiter.Wait(ctx, u.Host); err != nil {
					return nil, err
				}
			}
		}

		html, err := d.Fetcher.Fetch(ctx, link.URL)
		if err != nil {
			logger.Error("download failed", "url", link.URL, "err", err)
			res.Failed++
			continue
		}

		doc := &biomark.RawDocument{Name: link.Name(), URL: link.URL, HTML: html}
		if err := d.WorkDir.SaveRaw(ctx, doc); err != nil {
			logger.Error("save markup failed", "name", doc.Name, "err", err)
			res.Failed++
			continue
		}

		res.Fetched++
		docs = append(docs, doc)
	}
	return docs, nil
}

func (d *Driver) convert(ctx context.Context, raws []*biomark.RawDocument, res *Result) ([]*biomark.TextDocument, error) {
	logger := d.logger()
	docs := make([]*biomark.TextDocument, 0, len(raws))

	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		text, err := d.Extractor.Extract(raw.HTML)
		if err != nil {
			logger.Error("convert failed", "name", raw.Name, "err", err)
			res.Failed++
			continue
		}

		doc := &biomark.TextDocument{Name: raw.Name, URL: raw.URL, Text: text}
		if err := d.WorkDir.SaveText(ctx, doc); err != nil {
			logger.Error("save text failed", "name", doc.Name, "err", err)
			res.Failed++
			continue
		}

		res.Converted++
		docs = append(docs, doc)
	}
	return docs, nil
}

func (d *Driver) extract(ctx context.Context, docs []*biomark.TextDocument, res *Result) error {
	logger := d.logger()

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := d.extractOne(ctx, doc, res); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("extract failed", "name", doc.Name, "err", err)
			res.Failed++
		}
	}
	return nil
}

// extractOne builds the prompt, asks the model, then writes and inserts the
// record. The record is only inserted once its file is written.
func (d *Driver) extractOne(ctx context.Context, doc *biomark.TextDocument, res *Result) error {
	logger := d.logger()
	prompt := biomark.BuildPrompt(doc.Text)

	if d.Tokens != nil {
		if n, err := d.Tokens.CountTokens(ctx, prompt); err == nil {
			logger.Debug("prompt tokens", "name", doc.Name, "tokens", n)
		}
	}

	reply, err := d.Generator.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	fields, err := biomark.ParseReply(reply)
	if err != nil {
		if biomark.ErrorCode(err) == biomark.EDECODE {
			logger.Error("decode reply failed", "name", doc.Name, "err", err, "reply", reply)
		}
		return fmt.Errorf("parse reply: %w", err)
	}

	rec := &biomark.Record{Name: doc.Name, SourceURL: doc.URL, Fields: fields}
	if missing := rec.MissingFields(); len(missing) > 0 {
		logger.Debug("reply missing fields", "name", doc.Name, "fields", missing)
	}

	if err := d.Writer.WriteRecord(ctx, rec); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	res.Saved++

	if err := d.Store.InsertRecord(ctx, rec); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	res.Inserted++
	return nil
}

// checkDuplicates warns about links that appear more than once in the
// input. Duplicates are still processed.
func (d *Driver) checkDuplicates(links []biomark.Link) int {
	n := uint(len(links))
	if n < minExpectedLinks {
		n = minExpectedLinks
	}
	seen := bloom.NewFilter(n, duplicateFalsePositiveRate)

	var count int
	for _, link := range links {
		if seen.Seen(link.URL) {
			d.logger().Warn("duplicate link", "url", link.URL, "position", link.Position)
			count++
		}
	}
	return count
}

func (d *Driver) logFinished(res *Result) {
	d.logger().Info("run finished",
		"links", res.Links,
		"fetched", res.Fetched,
		"converted", res.Converted,
		"saved", res.Saved,
		"inserted", res.Inserted,
		"failed", res.Failed,
		"duplicates", res.Duplicates,
	)
}

func (d *Driver) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}
