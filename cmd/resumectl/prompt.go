package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"resumelens/portfolio-analyzer/internal/models"
	"resumelens/portfolio-analyzer/internal/services"
)

func newPromptCmd() *cobra.Command {
	var (
		file    string
		variant string
		links   string
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the composed prompt for a resume PDF without calling Gemini",
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := models.ParseVariant(variant)
			if err != nil {
				return err
			}

			doc, err := readDocument(file)
			if err != nil {
				return err
			}

			text, err := services.NewPDFParserService().ExtractText(doc.Data)
			if err != nil {
				return err
			}

			prompt, err := services.NewPromptBuilder().Build(models.AnalysisRequest{
				ResumeText:        text,
				PortfolioLinksRaw: links,
				Variant:           v,
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), prompt)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the resume PDF")
	cmd.Flags().StringVarP(&variant, "variant", "v", string(models.VariantProject), "analysis variant")
	cmd.Flags().StringVarP(&links, "links", "l", "", "newline-separated portfolio links")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
