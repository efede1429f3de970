package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resumelens/portfolio-analyzer/internal/config"
	"resumelens/portfolio-analyzer/internal/metrics"
	"resumelens/portfolio-analyzer/internal/models"
	"resumelens/portfolio-analyzer/internal/services"
)

type analyzeOptions struct {
	file    string
	variant string
	links   string
	json    bool
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a local resume PDF with Gemini",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "path to the resume PDF")
	cmd.Flags().StringVarP(&opts.variant, "variant", "v", string(models.VariantProject), "analysis variant (project, portfolio, gap-analysis)")
	cmd.Flags().StringVarP(&opts.links, "links", "l", "", "newline-separated portfolio links")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the full JSON response")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runAnalyze(cmd *cobra.Command, root *rootOptions, opts *analyzeOptions) error {
	variant, err := models.ParseVariant(opts.variant)
	if err != nil {
		return err
	}

	doc, err := readDocument(opts.file)
	if err != nil {
		return err
	}

	cfg := config.Load()
	log := root.logger()
	defer log.Sync() //nolint:errcheck

	var generator services.GeminiService
	if cfg.GeminiConfigured() {
		generator, err = services.NewGeminiService(cmd.Context(), cfg.Gemini.APIKey, cfg.Gemini.Model, log)
		if err != nil {
			return err
		}
	}

	analyzer := services.NewAnalyzerService(
		services.NewUploadGate(cfg.Upload.MaxFileSize),
		services.NewPDFParserService(),
		generator,
		nil,
		metrics.NewRegistry(),
		log,
		services.AnalyzerOptions{
			Model:          cfg.Gemini.Model,
			GapMaxTokens:   cfg.Gemini.MaxTokens,
			GapTemperature: cfg.Gemini.Temperature,
			ThinkingBudget: cfg.Gemini.ThinkingBudget,
		},
	)

	resp, err := analyzer.Analyze(cmd.Context(), doc, variant, opts.links, uuid.NewString())
	if err != nil {
		var ae *services.AnalysisError
		if errors.As(err, &ae) {
			log.Debug("analysis failed", zap.String("error_kind", string(ae.Kind)), zap.Error(err))
			return errors.New(ae.Message)
		}
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintln(out, resp.Analysis)
	if resp.NormalizedSignals != nil {
		fmt.Fprintf(out, "\nPortfolio score: %d\nGamified level: %s\nSkill level:    %s\n",
			resp.PortfolioScore, resp.GamifiedLevel, resp.SkillLevel)
	}
	return nil
}
