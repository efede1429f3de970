package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resumelens/portfolio-analyzer/internal/config"
	"resumelens/portfolio-analyzer/internal/services"
)

// newExtractCmd checks that a batch of PDFs would pass the upload gate and
// yield text, without calling Gemini.
func newExtractCmd(root *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "extract [files...]",
		Short: "Check that resume PDFs pass the upload gate and contain extractable text",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if dir != "" {
				matches, err := filepath.Glob(filepath.Join(dir, "*.pdf"))
				if err != nil {
					return fmt.Errorf("failed to list %s: %w", dir, err)
				}
				sort.Strings(matches)
				paths = append(paths, matches...)
			}
			if len(paths) == 0 {
				return errors.New("no files given; pass paths or --dir")
			}

			return runExtract(cmd, root, paths)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory whose *.pdf files are checked")

	return cmd
}

func runExtract(cmd *cobra.Command, root *rootOptions, paths []string) error {
	cfg := config.Load()
	log := root.logger()
	defer log.Sync() //nolint:errcheck

	gate := services.NewUploadGate(cfg.Upload.MaxFileSize)
	parser := services.NewPDFParserService()
	out := cmd.OutOrStdout()

	failed := 0
	for _, path := range paths {
		doc, err := readDocument(path)
		if err == nil {
			err = gate.Check(doc.DeclaredMimeType, doc.SizeBytes)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s: %s\n", path, failureMessage(err))
			continue
		}

		content, err := parser.ExtractTextWithMetaData(doc.Data)
		if err != nil {
			failed++
			log.Debug("extraction failed", zap.String("path", path), zap.Error(err))
			fmt.Fprintf(out, "FAIL  %s: %s\n", path, failureMessage(err))
			continue
		}

		fmt.Fprintf(out, "OK    %s: %d pages, %d characters\n", path, content.PageCount, len([]rune(content.Text)))
	}

	fmt.Fprintln(out, strings.Repeat("=", 40))
	fmt.Fprintf(out, "%d ok, %d failed\n", len(paths)-failed, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(paths))
	}
	return nil
}

func failureMessage(err error) string {
	var ae *services.AnalysisError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return err.Error()
}
