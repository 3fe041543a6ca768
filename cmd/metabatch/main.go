// Command metabatch drives the extraction batch pipeline: generate
// chunked JSONL request files from a paper metadata dump, submit them to
// an OpenAI-compatible batch API, and parse the batch output back into
// extraction records.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/alcademic/web/internal/batch"
	"github.com/alcademic/web/internal/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	var (
		mode         = flag.String("mode", "", "one of: generate, submit, parse")
		input        = flag.String("input", "", "metadata JSON file (generate) or batch output JSONL (parse)")
		outputPrefix = flag.String("output-prefix", "pdfs/batch_jsonl", "prefix for chunk files (generate/submit)")
		chunkSize    = flag.Int("chunk-size", 0, "max requests per chunk file (0 = config default)")
		model        = flag.String("model", "", "chat model name (empty = config default)")
		systemPrompt = flag.String("system-prompt", "", "override the system prompt")
		out          = flag.String("out", "", "output JSON file for parsed results (parse; empty = stdout)")
		cfgPath      = flag.String("config", "config/config.toml", "config file path")
	)
	flag.Parse()

	cfg := loadConfig(*cfgPath)
	if *chunkSize <= 0 {
		*chunkSize = cfg.Batch.ChunkSize
	}
	if *model == "" {
		*model = cfg.Batch.Model
	}

	var err error
	switch *mode {
	case "generate":
		err = runGenerate(*input, *outputPrefix, *chunkSize, *model, *systemPrompt)
	case "submit":
		err = runSubmit(cfg, *outputPrefix)
	case "parse":
		err = runParse(*input, *out)
	default:
		fmt.Fprintln(os.Stderr, "usage: metabatch -mode generate|submit|parse [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func loadConfig(path string) *config.Config {
	if _, err := os.Stat(path); err != nil {
		cfg := config.Default()
		cfg.ApplyEnv()
		return cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}

func runGenerate(input, prefix string, chunkSize int, model, systemPrompt string) error {
	if input == "" {
		return fmt.Errorf("generate requires -input")
	}
	stats, err := batch.Generate(batch.GenerateOptions{
		InputPath:    input,
		OutputPrefix: prefix,
		ChunkSize:    chunkSize,
		Model:        model,
		SystemPrompt: systemPrompt,
	})
	if err != nil {
		return err
	}
	log.Printf("wrote %d requests into %d file(s), skipped %d record(s)",
		stats.Processed, len(stats.Files), stats.Skipped)
	return nil
}

func runSubmit(cfg *config.Config, prefix string) error {
	if cfg.Batch.APIKey == "" {
		return fmt.Errorf("submit requires an API key (batch.api_key or BATCH_API_KEY)")
	}
	s := batch.NewSubmitter(cfg.Batch.APIKey, cfg.Batch.BaseURL, cfg.Batch.CompletionWindow)
	submitted, err := s.SubmitAll(context.Background(), prefix)
	if err != nil {
		return err
	}
	log.Printf("created %d batch(es)", len(submitted))
	return nil
}

func runParse(input, out string) error {
	if input == "" {
		return fmt.Errorf("parse requires -input")
	}
	results, err := batch.ParseResultsFile(input)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if out == "" {
		fmt.Println(string(encoded))
		return nil
	}
	if err := os.WriteFile(out, append(encoded, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	log.Printf("wrote %d extraction record(s) to %s", len(results), out)
	return nil
}
