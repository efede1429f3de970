package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"resumelens/portfolio-analyzer/internal/models"
)

const MimeTypePDF = "application/pdf"

type UploadGate interface {
	// Check validates upload metadata only. It never inspects content.
	Check(declaredMimeType string, sizeBytes int64) error
	// Accept validates a multipart upload and reads it into memory.
	Accept(file *multipart.FileHeader) (*models.UploadedDocument, error)
}

type uploadGate struct {
	maxFileSize  int64
	allowedTypes map[string]struct{}
}

func NewUploadGate(maxFileSize int64, allowedTypes ...string) UploadGate {
	if len(allowedTypes) == 0 {
		allowedTypes = []string{MimeTypePDF}
	}

	allowed := make(map[string]struct{}, len(allowedTypes))
	for _, t := range allowedTypes {
		allowed[strings.ToLower(t)] = struct{}{}
	}

	return &uploadGate{
		maxFileSize:  maxFileSize,
		allowedTypes: allowed,
	}
}

// Check implements UploadGate.
func (g *uploadGate) Check(declaredMimeType string, sizeBytes int64) error {
	if _, ok := g.allowedTypes[normalizeMimeType(declaredMimeType)]; !ok {
		return newAnalysisError(KindUnsupportedType, "Only PDF files are allowed", nil)
	}

	if sizeBytes > g.maxFileSize {
		return newAnalysisError(KindTooLarge, TooLargeMessage(g.maxFileSize), nil)
	}

	return nil
}

// Accept implements UploadGate.
func (g *uploadGate) Accept(file *multipart.FileHeader) (*models.UploadedDocument, error) {
	if file == nil {
		return nil, newAnalysisError(KindMissingFile, "No file uploaded", nil)
	}

	declared := file.Header.Get("Content-Type")
	if err := g.Check(declared, file.Size); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, newAnalysisError(KindExtractionFailed, "Failed to read uploaded file", fmt.Errorf("failed to open uploaded file: %w", err))
	}
	defer src.Close()

	// Read one byte past the ceiling so a lying Size header is still caught.
	data, err := io.ReadAll(io.LimitReader(src, g.maxFileSize+1))
	if err != nil {
		return nil, newAnalysisError(KindExtractionFailed, "Failed to read uploaded file", fmt.Errorf("failed to read uploaded file: %w", err))
	}
	if int64(len(data)) > g.maxFileSize {
		return nil, newAnalysisError(KindTooLarge, TooLargeMessage(g.maxFileSize), nil)
	}

	return &models.UploadedDocument{
		Data:             data,
		DeclaredMimeType: declared,
		OriginalFilename: file.Filename,
		SizeBytes:        int64(len(data)),
	}, nil
}

// TooLargeMessage renders the size ceiling the way clients see it.
func TooLargeMessage(maxFileSize int64) string {
	const mib = 1 << 20
	if maxFileSize >= mib && maxFileSize%mib == 0 {
		return fmt.Sprintf("File size exceeds %dMB limit", maxFileSize/mib)
	}
	return fmt.Sprintf("File size exceeds %d bytes limit", maxFileSize)
}

func normalizeMimeType(mimeType string) string {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}
	return mimeType
}
