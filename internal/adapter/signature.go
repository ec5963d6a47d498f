package adapter

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-sumsub-client/internal/utils"
)

// Request headers of the provider's authentication scheme.
const (
	HeaderAppToken          = "X-App-Token"
	HeaderAccessSig         = "X-App-Access-Sig"
	HeaderAccessTs          = "X-App-Access-Ts"
	HeaderContentType       = "Content-Type"
	HeaderReturnDocWarnings = "X-Return-Doc-Warnings"
	HeaderImageID           = "X-Image-Id"
	HeaderRequestID         = "X-Request-Id"
)

// Signer computes request signatures with one secret key. It is safe for
// concurrent use.
type Signer struct {
	hasher *utils.Hasher
}

// NewSigner returns a Signer keyed with secretKey.
func NewSigner(secretKey string) *Signer {
	return &Signer{hasher: utils.NewHasher(secretKey)}
}

// Sign returns the lowercase hex HMAC-SHA256 of
// ts || UPPER(method) || pathWithQuery || body.
func (s *Signer) Sign(ts int64, method, pathWithQuery string, body []byte) string {
	return hex.EncodeToString(s.hasher.Sum(signingPrefix(ts, method, pathWithQuery), body))
}

// SignReader signs like Sign but streams the body from r. r is read to EOF
// and rewound to its start, ready to be sent. A nil r is an empty body.
func (s *Signer) SignReader(ts int64, method, pathWithQuery string, r io.ReadSeeker) (string, error) {
	if r == nil {
		return s.Sign(ts, method, pathWithQuery, nil), nil
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind body before signing: %w", err)
	}
	sum, err := s.hasher.SumReader(signingPrefix(ts, method, pathWithQuery), r)
	if err != nil {
		return "", fmt.Errorf("read body for signing: %w", err)
	}
	if _, err = r.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind body after signing: %w", err)
	}

	return hex.EncodeToString(sum), nil
}

// Sign is a one-off helper equivalent to NewSigner(secretKey).Sign(...).
func Sign(secretKey string, ts int64, method, pathWithQuery string, body []byte) string {
	return NewSigner(secretKey).Sign(ts, method, pathWithQuery, body)
}

func signingPrefix(ts int64, method, pathWithQuery string) []byte {
	method = strings.ToUpper(method)
	b := make([]byte, 0, 20+len(method)+len(pathWithQuery))
	b = strconv.AppendInt(b, ts, 10)
	b = append(b, method...)
	b = append(b, pathWithQuery...)
	return b
}
