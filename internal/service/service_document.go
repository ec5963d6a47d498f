package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"sync"

	"github.com/MKhiriev/go-sumsub-client/internal/adapter"
	"github.com/MKhiriev/go-sumsub-client/internal/logger"
	"github.com/MKhiriev/go-sumsub-client/internal/validators"
	"github.com/MKhiriev/go-sumsub-client/models"
	"golang.org/x/sync/errgroup"
)

// maxParallelDownloads bounds concurrent image downloads of one applicant.
const maxParallelDownloads = 4

type documentService struct {
	transport adapter.Transport
	validator validators.Validator

	logger *logger.Logger
}

func NewDocumentService(transport adapter.Transport, validator validators.Validator, log *logger.Logger) DocumentService {
	if log == nil {
		log = logger.Nop()
	}
	if validator == nil {
		validator = validators.NewPayloadValidator()
	}

	return &documentService{
		transport: transport,
		validator: validator,
		logger:    log,
	}
}

func (d *documentService) AddDocument(ctx context.Context, applicantID string, doc models.DocumentPayload) (models.DocumentUpload, error) {
	if err := requireNonEmpty(applicantID, ErrEmptyApplicantID); err != nil {
		return models.DocumentUpload{}, err
	}
	if err := d.validator.Validate(ctx, doc); err != nil {
		return models.DocumentUpload{}, invalid(err)
	}

	metadata, err := json.Marshal(doc.Metadata)
	if err != nil {
		return models.DocumentUpload{}, fmt.Errorf("marshal document metadata: %w", err)
	}

	path := resourcePath("applicants", url.PathEscape(applicantID), "info", "idDoc")
	req, err := adapter.NewMultipartRequest(http.MethodPost, path,
		adapter.MultipartPart{Name: "metadata", Content: bytes.NewReader(metadata)},
		adapter.MultipartPart{Name: "content", FileName: doc.FileName, Content: doc.Content},
	)
	if err != nil {
		return models.DocumentUpload{}, fmt.Errorf("add document: %w", err)
	}
	req.Header.Set(adapter.HeaderReturnDocWarnings, "true")

	resp, err := call(ctx, d.transport, "add document", req, nil)
	if err != nil {
		return models.DocumentUpload{}, err
	}

	upload := models.DocumentUpload{
		ImageID: resp.Header.Get(adapter.HeaderImageID),
		Body:    resp.Body,
	}
	d.logger.Debug().
		Str("applicant_id", applicantID).
		Str("id_doc_type", doc.Metadata.IDDocType).
		Str("image_id", upload.ImageID).
		Msg("document uploaded")

	return upload, nil
}

// GetRequiredDocsStatus accepts the status both as a JSON array and as an
// object keyed by verification step. Object entries are returned in key
// order; null entries, steps with nothing uploaded yet, are skipped.
func (d *documentService) GetRequiredDocsStatus(ctx context.Context, applicantID string) ([]models.RequiredDocStatus, error) {
	if err := requireNonEmpty(applicantID, ErrEmptyApplicantID); err != nil {
		return nil, err
	}

	const op = "get required docs status"
	path := resourcePath("applicants", url.PathEscape(applicantID), "requiredIdDocsStatus")

	resp, err := call(ctx, d.transport, op, adapter.NewRequest(http.MethodGet, path, nil), nil)
	if err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) > 0 && body[0] == '{' {
		var byStep map[string]*models.RequiredDocStatus
		if err = adapter.DecodeJSON(op, resp, &byStep); err != nil {
			return nil, err
		}

		steps := make([]string, 0, len(byStep))
		for step := range byStep {
			steps = append(steps, step)
		}
		sort.Strings(steps)

		out := make([]models.RequiredDocStatus, 0, len(steps))
		for _, step := range steps {
			if s := byStep[step]; s != nil {
				out = append(out, *s)
			}
		}
		return out, nil
	}

	var list []*models.RequiredDocStatus
	if err = adapter.DecodeJSON(op, resp, &list); err != nil {
		return nil, err
	}

	out := make([]models.RequiredDocStatus, 0, len(list))
	for _, s := range list {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (d *documentService) GetApplicantStatusStream(ctx context.Context, applicantID string) (io.ReadCloser, error) {
	if err := requireNonEmpty(applicantID, ErrEmptyApplicantID); err != nil {
		return nil, err
	}

	path := resourcePath("applicants", url.PathEscape(applicantID), "status")
	resp, err := callStream(ctx, d.transport, "get applicant status", adapter.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		return nil, err
	}
	return resp.Stream, nil
}

func (d *documentService) GetDocumentImage(ctx context.Context, inspectionID, imageID string) (models.DocumentImage, error) {
	if err := requireNonEmpty(inspectionID, ErrEmptyInspectionID); err != nil {
		return models.DocumentImage{}, err
	}
	if err := requireNonEmpty(imageID, ErrEmptyImageID); err != nil {
		return models.DocumentImage{}, err
	}

	path := resourcePath("inspections", url.PathEscape(inspectionID), "resources", url.PathEscape(imageID))
	resp, err := callStream(ctx, d.transport, "get document image", adapter.NewRequest(http.MethodGet, path, nil))
	if err != nil {
		return models.DocumentImage{}, err
	}

	return models.DocumentImage{
		Content:     resp.Stream,
		ContentType: resp.Header.Get(adapter.HeaderContentType),
	}, nil
}

func (d *documentService) ListApplicantDocImages(ctx context.Context, applicantID string) (map[string]models.DocImageRef, error) {
	docs, err := d.GetRequiredDocsStatus(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	images := make(map[string]models.DocImageRef)
	for _, doc := range docs {
		for _, id := range doc.ImageIDs {
			images[string(id)] = models.DocImageRef{IDDocType: doc.IDDocType}
		}
	}
	return images, nil
}

func (d *documentService) DownloadApplicantDocImages(ctx context.Context, applicantID, inspectionID string) (map[string][]byte, error) {
	if err := requireNonEmpty(inspectionID, ErrEmptyInspectionID); err != nil {
		return nil, err
	}

	images, err := d.ListApplicantDocImages(ctx, applicantID)
	if err != nil {
		return nil, err
	}

	var (
		mu  sync.Mutex
		out = make(map[string][]byte, len(images))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelDownloads)

	for imageID := range images {
		g.Go(func() error {
			img, err := d.GetDocumentImage(gctx, inspectionID, imageID)
			if err != nil {
				return err
			}
			defer img.Content.Close()

			content, err := io.ReadAll(img.Content)
			if err != nil {
				return fmt.Errorf("read image %s: %w", imageID, err)
			}

			mu.Lock()
			out[imageID] = content
			mu.Unlock()
			return nil
		})
	}

	if err = g.Wait(); err != nil {
		return nil, err
	}

	d.logger.Debug().Str("applicant_id", applicantID).Int("images", len(out)).Msg("document images downloaded")
	return out, nil
}
