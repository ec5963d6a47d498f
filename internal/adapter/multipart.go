package adapter

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"os"
	"strings"
)

// MultipartPart is one part of a multipart/form-data body.
type MultipartPart struct {
	Name string

	// FileName marks the part as a file part when set.
	FileName string

	// ContentType of the part. File parts default to
	// application/octet-stream.
	ContentType string

	Content io.Reader
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// NewMultipartRequest serialises parts into a temporary spool file and
// returns a request whose body is that file. The whole body, boundary
// included, exists before signing while file content is streamed rather than
// held in memory. The spool file is removed when the request is closed.
func NewMultipartRequest(method, pathWithQuery string, parts ...MultipartPart) (req *PendingRequest, err error) {
	spool, err := os.CreateTemp("", "sumsub-multipart-*")
	if err != nil {
		return nil, fmt.Errorf("create multipart spool: %w", err)
	}

	// The HTTP client closes the body after sending, so an already closed
	// spool is expected here.
	cleanup := func() error {
		closeErr := spool.Close()
		if errors.Is(closeErr, os.ErrClosed) {
			closeErr = nil
		}
		return errors.Join(closeErr, os.Remove(spool.Name()))
	}
	defer func() {
		if err != nil {
			_ = cleanup()
		}
	}()

	mw := multipart.NewWriter(spool)
	for _, part := range parts {
		if err = writePart(mw, part); err != nil {
			return nil, fmt.Errorf("write multipart part %q: %w", part.Name, err)
		}
	}
	if err = mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	size, err := spool.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("size multipart spool: %w", err)
	}
	if _, err = spool.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind multipart spool: %w", err)
	}

	req = NewRequest(method, pathWithQuery, nil)
	req.Body = spool
	req.ContentLength = size
	req.Header.Set(HeaderContentType, mw.FormDataContentType())
	req.closer = cleanup

	return req, nil
}

func writePart(mw *multipart.Writer, part MultipartPart) error {
	h := make(textproto.MIMEHeader)
	disposition := fmt.Sprintf(`form-data; name="%s"`, quoteEscaper.Replace(part.Name))
	if part.FileName != "" {
		disposition += fmt.Sprintf(`; filename="%s"`, quoteEscaper.Replace(part.FileName))
		if part.ContentType == "" {
			part.ContentType = "application/octet-stream"
		}
	}
	h.Set("Content-Disposition", disposition)
	if part.ContentType != "" {
		h.Set(HeaderContentType, part.ContentType)
	}

	w, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if part.Content == nil {
		return nil
	}
	_, err = io.Copy(w, part.Content)
	return err
}
