package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-sumsub-client/internal/adapter"
	"github.com/MKhiriev/go-sumsub-client/internal/config"
	"github.com/MKhiriev/go-sumsub-client/internal/logger"
	"github.com/MKhiriev/go-sumsub-client/internal/mock"
	"github.com/MKhiriev/go-sumsub-client/internal/sumsubtest"
	"github.com/MKhiriev/go-sumsub-client/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDocumentSvc(t *testing.T) (DocumentService, *mock.MockTransport) {
	t.Helper()

	ctrl := gomock.NewController(t)
	transport := mock.NewMockTransport(ctrl)

	return NewDocumentService(transport, nil, logger.Nop()), transport
}

// newIntegrationDocumentSvc wires a DocumentService to the fake provider
// through the real signed transport.
func newIntegrationDocumentSvc(t *testing.T, srv *sumsubtest.Server) DocumentService {
	t.Helper()

	transport, err := adapter.NewHTTPTransport(srv.Credentials(), config.ClientAdapter{RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)

	return NewDocumentService(transport, nil, logger.Nop())
}

// ── AddDocument ──────────────────────────────────────────────────────────────

func TestDocumentService_AddDocument(t *testing.T) {
	srv := sumsubtest.NewServer(t)

	var (
		gotMetadata string
		gotFile     string
		gotName     string
	)
	srv.Handle(http.MethodPost, "/resources/applicants/{id}/info/idDoc", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "app-1", chi.URLParam(r, "id"))

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		gotMetadata = r.FormValue("metadata")

		f, hdr, err := r.FormFile("content")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		gotFile, gotName = string(b), hdr.Filename

		w.Header().Set(adapter.HeaderImageID, "1460288463")
		sumsubtest.WriteJSON(w, http.StatusOK, map[string]any{
			"idDocType": "PASSPORT",
			"country":   "NGA",
			"warnings":  []string{"image is blurry"},
		})
	})

	svc := newIntegrationDocumentSvc(t, srv)

	upload, err := svc.AddDocument(context.Background(), "app-1", models.DocumentPayload{
		Metadata: models.DocumentMetadata{IDDocType: "PASSPORT", Country: "NGA", Number: "A1234567"},
		FileName: "passport.jpg",
		Content:  strings.NewReader("jpeg-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "1460288463", upload.ImageID)
	assert.Contains(t, string(upload.Body), "image is blurry")
	assert.JSONEq(t, `{"idDocType":"PASSPORT","country":"NGA","number":"A1234567"}`, gotMetadata)
	assert.Equal(t, "jpeg-bytes", gotFile)
	assert.Equal(t, "passport.jpg", gotName)

	rec, ok := srv.LastRequest()
	require.True(t, ok)
	assert.True(t, rec.SignatureValid, "multipart body must be signed byte for byte")
	assert.Equal(t, "true", rec.Header.Get(adapter.HeaderReturnDocWarnings))
	assert.True(t, strings.HasPrefix(rec.Header.Get(adapter.HeaderContentType), "multipart/form-data; boundary="))
}

func TestDocumentService_AddDocument_InvalidInputSendsNothing(t *testing.T) {
	svc, _ := newTestDocumentSvc(t)
	ctx := context.Background()

	_, err := svc.AddDocument(ctx, "app-1", models.DocumentPayload{
		Metadata: models.DocumentMetadata{IDDocType: "PASSPORT", Country: "NGA"},
		FileName: "passport.jpg",
	})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	_, err = svc.AddDocument(ctx, "", models.DocumentPayload{})
	assert.ErrorIs(t, err, ErrEmptyApplicantID)
}

func TestDocumentService_AddDocument_Rejected(t *testing.T) {
	svc, transport := newTestDocumentSvc(t)

	transport.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req *adapter.PendingRequest) (*adapter.Response, error) {
			defer req.Close()
			return jsonResponse(http.StatusBadRequest, `{"description":"Unsupported file format","code":400}`), nil
		},
	)

	_, err := svc.AddDocument(context.Background(), "app-1", models.DocumentPayload{
		Metadata: models.DocumentMetadata{IDDocType: "PASSPORT", Country: "NGA"},
		FileName: "passport.exe",
		Content:  strings.NewReader("MZ"),
	})
	assert.ErrorIs(t, err, adapter.ErrBadRequest)
}

// ── GetRequiredDocsStatus ────────────────────────────────────────────────────

func TestDocumentService_GetRequiredDocsStatus(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []models.RequiredDocStatus
	}{
		{
			name: "object keyed by step",
			body: `{
				"SELFIE": {"idDocType":"SELFIE","imageIds":[3]},
				"IDENTITY": {"idDocType":"PASSPORT","country":"NGA","imageIds":[1,"2"],"reviewResult":{"reviewAnswer":"GREEN"}},
				"PROOF_OF_RESIDENCE": null
			}`,
			want: []models.RequiredDocStatus{
				{IDDocType: "PASSPORT", Country: "NGA", ImageIDs: []models.ImageID{"1", "2"}, ReviewResult: &models.ReviewResult{ReviewAnswer: "GREEN"}},
				{IDDocType: "SELFIE", ImageIDs: []models.ImageID{"3"}},
			},
		},
		{
			name: "array",
			body: `[{"idDocType":"PASSPORT","imageIds":[10]}, null]`,
			want: []models.RequiredDocStatus{
				{IDDocType: "PASSPORT", ImageIDs: []models.ImageID{"10"}},
			},
		},
		{
			name: "empty object",
			body: `{}`,
			want: []models.RequiredDocStatus{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, transport := newTestDocumentSvc(t)

			transport.EXPECT().Dispatch(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, req *adapter.PendingRequest) (*adapter.Response, error) {
					assert.Equal(t, http.MethodGet, req.Method)
					assert.Equal(t, "/resources/applicants/app-1/requiredIdDocsStatus", req.PathWithQuery)
					return jsonResponse(http.StatusOK, tt.body), nil
				},
			)

			got, err := svc.GetRequiredDocsStatus(context.Background(), "app-1")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentService_GetRequiredDocsStatus_Malformed(t *testing.T) {
	svc, transport := newTestDocumentSvc(t)

	transport.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(jsonResponse(http.StatusOK, `<html>`), nil)

	_, err := svc.GetRequiredDocsStatus(context.Background(), "app-1")

	var decErr *adapter.DecodingError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "<html>", string(decErr.Body))
}

// ── ListApplicantDocImages ───────────────────────────────────────────────────

func TestDocumentService_ListApplicantDocImages(t *testing.T) {
	svc, transport := newTestDocumentSvc(t)

	transport.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Return(jsonResponse(http.StatusOK, `{
		"IDENTITY": {"idDocType":"PASSPORT","imageIds":[1,2]},
		"SELFIE": {"idDocType":"SELFIE","imageIds":[3]},
		"EMPTY": {"idDocType":"UTILITY_BILL","imageIds":[]}
	}`), nil)

	got, err := svc.ListApplicantDocImages(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]models.DocImageRef{
		"1": {IDDocType: "PASSPORT"},
		"2": {IDDocType: "PASSPORT"},
		"3": {IDDocType: "SELFIE"},
	}, got)
}

// ── streams ──────────────────────────────────────────────────────────────────

func TestDocumentService_GetApplicantStatusStream(t *testing.T) {
	srv := sumsubtest.NewServer(t)
	srv.Handle(http.MethodGet, "/resources/applicants/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reviewStatus":"pending"}`))
	})

	svc := newIntegrationDocumentSvc(t, srv)

	stream, err := svc.GetApplicantStatusStream(context.Background(), "app-1")
	require.NoError(t, err)
	defer stream.Close()

	b, err := io.ReadAll(stream)
	require.NoError(t, err)
	assert.JSONEq(t, `{"reviewStatus":"pending"}`, string(b))
}

func TestDocumentService_GetApplicantStatusStream_NotFound(t *testing.T) {
	srv := sumsubtest.NewServer(t)
	srv.Handle(http.MethodGet, "/resources/applicants/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		sumsubtest.WriteError(w, http.StatusNotFound, "Applicant not found")
	})

	svc := newIntegrationDocumentSvc(t, srv)

	stream, err := svc.GetApplicantStatusStream(context.Background(), "missing")
	assert.Nil(t, stream)
	require.ErrorIs(t, err, adapter.ErrNotFound)

	var apiErr *adapter.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Applicant not found", apiErr.Description)
}

// brokenStream yields a partial error envelope, then fails.
type brokenStream struct {
	data     io.Reader
	closeErr error
	closed   bool
}

var errStreamReset = errors.New("stream reset")

func (b *brokenStream) Read(p []byte) (int, error) {
	n, err := b.data.Read(p)
	if err == io.EOF {
		return n, errStreamReset
	}
	return n, err
}

func (b *brokenStream) Close() error {
	b.closed = true
	return b.closeErr
}

func TestDocumentService_GetApplicantStatusStream_DrainFailure(t *testing.T) {
	tests := []struct {
		name     string
		closeErr error
	}{
		{"read fails", nil},
		{"read and close fail", errors.New("close failed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, transport := newTestDocumentSvc(t)
			ctx := context.Background()

			body := &brokenStream{data: strings.NewReader(`{"description":"Service unavail`), closeErr: tt.closeErr}
			transport.EXPECT().Dispatch(ctx, gomock.Any()).Return(&adapter.Response{
				StatusCode: http.StatusInternalServerError,
				Header:     http.Header{},
				Stream:     body,
			}, nil)

			stream, err := svc.GetApplicantStatusStream(ctx, "app-1")
			assert.Nil(t, stream)
			assert.True(t, body.closed)

			require.ErrorIs(t, err, adapter.ErrInternalServerError)
			require.ErrorIs(t, err, errStreamReset)

			var transportErr *adapter.TransportError
			require.ErrorAs(t, err, &transportErr)
			assert.Equal(t, adapter.KindBody, transportErr.Kind)
			assert.Equal(t, "/resources/applicants/app-1/status", transportErr.Path)

			if tt.closeErr != nil {
				require.ErrorIs(t, err, tt.closeErr)
			}
		})
	}
}

func TestDocumentService_GetDocumentImage(t *testing.T) {
	srv := sumsubtest.NewServer(t)
	srv.Handle(http.MethodGet, "/resources/inspections/{insp}/resources/{image}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "insp-1", chi.URLParam(r, "insp"))
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("image-" + chi.URLParam(r, "image")))
	})

	svc := newIntegrationDocumentSvc(t, srv)

	img, err := svc.GetDocumentImage(context.Background(), "insp-1", "42")
	require.NoError(t, err)
	defer img.Content.Close()

	b, err := io.ReadAll(img.Content)
	require.NoError(t, err)
	assert.Equal(t, "image-42", string(b))
	assert.Equal(t, "image/jpeg", img.ContentType)
}

func TestDocumentService_GetDocumentImage_EmptyIDs(t *testing.T) {
	svc, _ := newTestDocumentSvc(t)

	_, err := svc.GetDocumentImage(context.Background(), "", "1")
	assert.ErrorIs(t, err, ErrEmptyInspectionID)

	_, err = svc.GetDocumentImage(context.Background(), "insp-1", "")
	assert.ErrorIs(t, err, ErrEmptyImageID)
}

// ── DownloadApplicantDocImages ───────────────────────────────────────────────

func TestDocumentService_DownloadApplicantDocImages(t *testing.T) {
	srv := sumsubtest.NewServer(t)
	srv.Handle(http.MethodGet, "/resources/applicants/{id}/requiredIdDocsStatus", func(w http.ResponseWriter, r *http.Request) {
		sumsubtest.WriteJSON(w, http.StatusOK, map[string]any{
			"IDENTITY": map[string]any{"idDocType": "PASSPORT", "imageIds": []int{1, 2, 3, 4, 5, 6}},
			"SELFIE":   map[string]any{"idDocType": "SELFIE", "imageIds": []int{7}},
		})
	})

	var inFlight, maxInFlight atomic.Int32
	srv.Handle(http.MethodGet, "/resources/inspections/{insp}/resources/{image}", func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			m := maxInFlight.Load()
			if n <= m || maxInFlight.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-" + chi.URLParam(r, "image")))
	})

	svc := newIntegrationDocumentSvc(t, srv)

	got, err := svc.DownloadApplicantDocImages(context.Background(), "app-1", "insp-1")
	require.NoError(t, err)

	require.Len(t, got, 7)
	for _, id := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		assert.Equal(t, "png-"+id, string(got[id]))
	}
	assert.LessOrEqual(t, maxInFlight.Load(), int32(maxParallelDownloads))

	for _, rec := range srv.Requests() {
		assert.True(t, rec.SignatureValid, rec.RequestURI)
	}
}

func TestDocumentService_DownloadApplicantDocImages_FailsOnFirstError(t *testing.T) {
	srv := sumsubtest.NewServer(t)
	srv.Handle(http.MethodGet, "/resources/applicants/{id}/requiredIdDocsStatus", func(w http.ResponseWriter, r *http.Request) {
		sumsubtest.WriteJSON(w, http.StatusOK, []any{
			map[string]any{"idDocType": "PASSPORT", "imageIds": []int{1, 2}},
		})
	})
	srv.Handle(http.MethodGet, "/resources/inspections/{insp}/resources/{image}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "image") == "2" {
			sumsubtest.WriteError(w, http.StatusNotFound, "image not found")
			return
		}
		_, _ = w.Write([]byte("ok"))
	})

	svc := newIntegrationDocumentSvc(t, srv)

	got, err := svc.DownloadApplicantDocImages(context.Background(), "app-1", "insp-1")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, adapter.ErrNotFound)
}
