// Command analyze runs a single document through the extraction pipeline
// and prints the consensus result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/caselens/verdict/internal/config"
	"github.com/caselens/verdict/internal/core"
	"github.com/caselens/verdict/internal/core/model"
	"github.com/caselens/verdict/internal/engine"
	"github.com/caselens/verdict/internal/llm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		file     = flag.String("file", "", "document to analyze (default: stdin)")
		docType  = flag.String("type", "", "document type hint (contract, judgment, ...)")
		accuracy = flag.String("accuracy", "", "required accuracy (standard, high, near-perfect)")
		timeout  = flag.Duration("timeout", 0, "processing budget (default: configured value)")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	var text []byte
	if *file != "" {
		text, err = os.ReadFile(*file)
	} else {
		text, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize llm client: %w", err)
	}
	registry, err := engine.NewDefaultRegistry(client, cfg.Processing.DisabledEngines)
	if err != nil {
		return err
	}
	processor := core.NewProcessor(registry, cfg.ProcessingBudget(), nil)

	accuracyLevel := model.AccuracyLevel(cfg.Processing.DefaultAccuracy)
	if *accuracy != "" {
		accuracyLevel = model.AccuracyLevel(*accuracy)
	}
	opts := model.ExtractionOptions{
		RequiredAccuracy:  accuracyLevel,
		MaxProcessingTime: *timeout,
		DocumentType:      *docType,
	}

	res, err := processor.ProcessDocument(ctx, string(text), opts)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
