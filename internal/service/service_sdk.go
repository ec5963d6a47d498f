package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/MKhiriev/go-sumsub-client/internal/adapter"
	"github.com/MKhiriev/go-sumsub-client/internal/logger"
	"github.com/MKhiriev/go-sumsub-client/models"
)

type sdkService struct {
	transport adapter.Transport

	logger *logger.Logger
}

func NewSDKService(transport adapter.Transport, log *logger.Logger) SDKService {
	if log == nil {
		log = logger.Nop()
	}

	return &sdkService{transport: transport, logger: log}
}

func (s *sdkService) GetAccessToken(ctx context.Context, userID, levelName string) (models.AccessToken, error) {
	if err := requireNonEmpty(userID, ErrEmptyExternalID); err != nil {
		return models.AccessToken{}, err
	}
	if err := requireNonEmpty(levelName, ErrEmptyLevelName); err != nil {
		return models.AccessToken{}, err
	}

	path := withQuery(resourcePath("accessTokens"), "userId", userID, "levelName", levelName)

	var token models.AccessToken
	if _, err := call(ctx, s.transport, "get access token", adapter.NewRequest(http.MethodPost, path, nil), &token); err != nil {
		return models.AccessToken{}, err
	}
	return token, nil
}

func (s *sdkService) GetVerificationLink(ctx context.Context, externalUserID, levelName string, ttl time.Duration) (models.VerificationLink, error) {
	if err := requireNonEmpty(externalUserID, ErrEmptyExternalID); err != nil {
		return models.VerificationLink{}, err
	}
	if err := requireNonEmpty(levelName, ErrEmptyLevelName); err != nil {
		return models.VerificationLink{}, err
	}
	secs := int64(ttl / time.Second)
	if secs < 1 {
		return models.VerificationLink{}, invalid(ErrInvalidTTL)
	}

	path := withQuery(
		resourcePath("sdkIntegrations", "levels", url.PathEscape(levelName), "websdkLink"),
		"ttlInSecs", strconv.FormatInt(secs, 10),
		"externalUserId", externalUserID,
	)

	var link models.VerificationLink
	if _, err := call(ctx, s.transport, "get verification link", adapter.NewRequest(http.MethodPost, path, nil), &link); err != nil {
		return models.VerificationLink{}, err
	}

	s.logger.Debug().Dur("ttl", ttl).Msg("verification link issued")
	return link, nil
}
