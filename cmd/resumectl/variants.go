package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"resumelens/portfolio-analyzer/internal/config"
	"resumelens/portfolio-analyzer/internal/models"
	"resumelens/portfolio-analyzer/internal/services"
)

func newVariantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "variants",
		Short: "List analysis variants and their generation parameters",
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := config.Load()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VARIANT\tMAX TOKENS\tTEMPERATURE\tTOP P\tTOP K\tSIGNALS")
			for _, v := range models.Variants {
				p := services.GenerationParametersFor(v, cfg.Gemini.MaxTokens, cfg.Gemini.Temperature)
				fmt.Fprintf(w, "%s\t%d\t%.2g\t%.2g\t%.0f\t%t\n", v, p.MaxOutputTokens, p.Temperature, p.TopP, p.TopK, v.HasSignals())
			}
			_ = w.Flush()
		},
	}
}
