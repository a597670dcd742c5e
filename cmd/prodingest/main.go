// Package main provides the CLI entry point for prodingest.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/osdupipe/prodingest/pkg/prodingest"
	"github.com/osdupipe/prodingest/pkg/prodingest/models"
	"github.com/osdupipe/prodingest/pkg/prodingest/output"
	"github.com/osdupipe/prodingest/pkg/prodingest/parser"
)

var (
	sourcePath     string
	destPath       string
	skipSubmission bool
	outDir         string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prodingest",
		Short: "Normalize production-data spreadsheets and ingest them",
		Long: `prodingest locates spreadsheet deliverables in object storage,
normalizes them into canonical CSV tables and drives each CSV through the
external ingestion workflow.`,
	}

	runCmd := &cobra.Command{
		Use:   "run [blob-path]",
		Short: "Run the full pipeline for one deliverable",
		Args:  cobra.ExactArgs(1),
		RunE:  runPipeline,
	}
	runCmd.Flags().StringVar(&sourcePath, "source", "", "Source location descriptor (JSON file)")
	runCmd.Flags().StringVar(&destPath, "dest", "", "Destination location descriptor (JSON file)")
	runCmd.Flags().BoolVar(&skipSubmission, "skip-submission", false, "Upload CSVs without submitting them")
	runCmd.MarkFlagRequired("source")
	runCmd.MarkFlagRequired("dest")

	convertCmd := &cobra.Command{
		Use:   "convert [input.xlsx]",
		Short: "Convert a local workbook to canonical CSV files",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvert,
	}
	convertCmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory for CSV files")

	rootCmd.AddCommand(runCmd, convertCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPipeline(cmd *cobra.Command, args []string) error {
	source, err := models.LoadLocation(sourcePath)
	if err != nil {
		return err
	}
	dest, err := models.LoadLocation(destPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	log, err := prodingest.Run(context.Background(), source, dest, args, prodingest.Options{
		Logger:         logger,
		SkipSubmission: skipSubmission,
	})
	fmt.Println(log)
	return err
}

func runConvert(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	tables, err := parser.ExtractWorkbook(data, logger)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	for _, name := range tables.Names() {
		table, _ := tables.Get(name)
		csvBytes, err := output.Encode(table)
		if err != nil {
			return err
		}
		filename := filepath.Join(outDir, name+".csv")
		if err := os.WriteFile(filename, csvBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Printf("%s: %d rows\n", filename, table.RowCount())
	}
	return nil
}
