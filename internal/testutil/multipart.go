package testutil

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

// FormFile describes one file part of a multipart body.
type FormFile struct {
	Field       string
	Filename    string
	ContentType string
	Data        []byte
}

// MultipartBody encodes files and plain fields, returning the body and its
// Content-Type header value. Unlike multipart.Writer.CreateFormFile, each
// part carries the declared ContentType.
func MultipartBody(files []FormFile, fields map[string]string) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, quoteEscaper.Replace(f.Field), quoteEscaper.Replace(f.Filename)))
		if f.ContentType != "" {
			h.Set("Content-Type", f.ContentType)
		}
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write part %s: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %w", err)
	}
	return body, w.FormDataContentType(), nil
}

// FileHeader round-trips f through a multipart body so the result behaves
// exactly like a header parsed from a real request.
func FileHeader(f FormFile) (*multipart.FileHeader, error) {
	body, contentType, err := MultipartBody([]FormFile{f}, nil)
	if err != nil {
		return nil, err
	}

	boundary := strings.TrimPrefix(contentType, "multipart/form-data; boundary=")
	form, err := multipart.NewReader(body, boundary).ReadForm(32 << 20)
	if err != nil {
		return nil, fmt.Errorf("failed to read form: %w", err)
	}

	headers := form.File[f.Field]
	if len(headers) == 0 {
		return nil, fmt.Errorf("no file part %q", f.Field)
	}
	return headers[0], nil
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)
