package revizto

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/hashicorp-forge/revizto/pkg/revizto/query"
)

// File is an upload attached to an issue or comment.
type File struct {
	// Name is the file name reported to the server.
	Name string
	Data []byte
	// ContentType is detected from Data when empty.
	ContentType string
}

func (f *File) contentType() string {
	if f.ContentType != "" {
		return f.ContentType
	}
	return mimetype.Detect(f.Data).String()
}

// formPart is a multipart part carrying a file or a typed value.
type formPart struct {
	name        string
	filename    string
	contentType string
	data        []byte
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart writes fields in key order followed by parts.
func encodeMultipart(fields map[string][]string, parts []formPart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, k := range query.SortedKeys(fields) {
		for _, v := range fields[k] {
			if err := w.WriteField(k, v); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", k, err)
			}
		}
	}

	for _, p := range parts {
		disposition := fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(p.name))
		if p.filename != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, quoteEscaper.Replace(filepath.Base(p.filename)))
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", disposition)
		if p.contentType != "" {
			h.Set("Content-Type", p.contentType)
		}
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", p.name, err)
		}
		if _, err := pw.Write(p.data); err != nil {
			return nil, "", fmt.Errorf("write part %s: %w", p.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// postMultipart issues a multipart/form-data POST.
func (c *Client) postMultipart(ctx context.Context, path string, fields map[string][]string, parts []formPart) (Response, error) {
	body, contentType, err := encodeMultipart(fields, parts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	return c.do(ctx, request{
		method:      http.MethodPost,
		path:        path,
		body:        body,
		contentType: contentType,
	})
}
