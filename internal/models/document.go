package models

// UploadedDocument is the request-scoped copy of an uploaded file.
type UploadedDocument struct {
	Data             []byte
	DeclaredMimeType string
	OriginalFilename string
	SizeBytes        int64
}
