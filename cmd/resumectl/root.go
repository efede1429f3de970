package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resumelens/portfolio-analyzer/internal/logger"
	"resumelens/portfolio-analyzer/internal/models"
)

const app = "resumectl"

// Actual version can be specified in build command.
var version = "unknown"

type rootOptions struct {
	debug   bool
	jsonLog bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          app,
		Short:        "resumectl analyzes resume PDFs from the command line",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.debug, "debug", "d", false, "verbose/debug output")
	cmd.PersistentFlags().BoolVarP(&opts.jsonLog, "json-log", "j", false, "json format for logging")

	cmd.AddCommand(
		newAnalyzeCmd(opts),
		newPromptCmd(),
		newExtractCmd(opts),
		newVariantsCmd(),
		newVersionCmd(),
	)

	return cmd
}

func (o *rootOptions) logger() *zap.Logger {
	l, err := logger.New(o.jsonLog, o.debug)
	if err != nil {
		return zap.NewNop()
	}
	return l
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s\n", app, version)
		},
	}
}

// readDocument loads a local file the way an upload would arrive, sniffing
// its content type instead of trusting the extension.
func readDocument(path string) (*models.UploadedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return &models.UploadedDocument{
		Data:             data,
		DeclaredMimeType: http.DetectContentType(data),
		OriginalFilename: filepath.Base(path),
		SizeBytes:        int64(len(data)),
	}, nil
}
