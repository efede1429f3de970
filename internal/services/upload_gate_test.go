package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumelens/portfolio-analyzer/internal/testutil"
)

func TestUploadGateCheck(t *testing.T) {
	gate := NewUploadGate(10 << 20)

	tests := []struct {
		name     string
		mimeType string
		size     int64
		want     ErrorKind
	}{
		{name: "pdf at limit", mimeType: "application/pdf", size: 10 << 20},
		{name: "pdf with parameters", mimeType: "Application/PDF; charset=binary", size: 1},
		{name: "one byte over", mimeType: "application/pdf", size: 10<<20 + 1, want: KindTooLarge},
		{name: "plain text", mimeType: "text/plain", size: 10, want: KindUnsupportedType},
		{name: "octet stream", mimeType: "application/octet-stream", size: 10, want: KindUnsupportedType},
		{name: "no type", mimeType: "", size: 10, want: KindUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := gate.Check(tt.mimeType, tt.size)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
		})
	}
}

func TestUploadGateTypeCheckedBeforeSize(t *testing.T) {
	err := NewUploadGate(10).Check("image/png", 1000)
	assert.Equal(t, KindUnsupportedType, KindOf(err))
}

func TestUploadGateMessages(t *testing.T) {
	gate := NewUploadGate(10 << 20)

	var ae *AnalysisError
	require.ErrorAs(t, gate.Check("application/pdf", 11<<20), &ae)
	assert.Equal(t, "File size exceeds 10MB limit", ae.Message)

	require.ErrorAs(t, gate.Check("text/html", 1), &ae)
	assert.Equal(t, "Only PDF files are allowed", ae.Message)

	assert.Equal(t, "File size exceeds 1500 bytes limit", TooLargeMessage(1500))
}

func TestUploadGateAccept(t *testing.T) {
	data := testutil.BuildPDF("Jane Doe")
	fh, err := testutil.FileHeader(testutil.FormFile{
		Field: "file", Filename: "jane.pdf", ContentType: MimeTypePDF, Data: data,
	})
	require.NoError(t, err)

	doc, err := NewUploadGate(10 << 20).Accept(fh)
	require.NoError(t, err)

	assert.Equal(t, data, doc.Data)
	assert.Equal(t, "jane.pdf", doc.OriginalFilename)
	assert.Equal(t, MimeTypePDF, doc.DeclaredMimeType)
	assert.Equal(t, int64(len(data)), doc.SizeBytes)
}

func TestUploadGateAcceptRejects(t *testing.T) {
	_, err := NewUploadGate(10 << 20).Accept(nil)
	assert.Equal(t, KindMissingFile, KindOf(err))

	fh, err := testutil.FileHeader(testutil.FormFile{
		Field: "file", Filename: "big.pdf", ContentType: MimeTypePDF, Data: make([]byte, 2048),
	})
	require.NoError(t, err)

	_, err = NewUploadGate(1024).Accept(fh)
	assert.Equal(t, KindTooLarge, KindOf(err))
}
