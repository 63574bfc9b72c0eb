package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/klokku/prazos/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

var ErrUnauthenticated = errors.New("google calendar access is not configured")

// NewCalendarService authenticates with the service-account credentials file when one is
// configured and with the API key otherwise.
func NewCalendarService(ctx context.Context, cfg config.Google) (*gcal.Service, error) {
	var opt option.ClientOption
	switch {
	case cfg.CredentialsFile != "":
		client, err := serviceAccountClient(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, err
		}
		opt = option.WithHTTPClient(client)
	case cfg.ApiKey != "":
		opt = option.WithAPIKey(cfg.ApiKey)
	default:
		return nil, ErrUnauthenticated
	}

	service, err := gcal.NewService(ctx, opt)
	if err != nil {
		err := fmt.Errorf("unable to create Calendar client: %w", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}

func serviceAccountClient(ctx context.Context, credentialsFile string) (*http.Client, error) {
	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read Google credentials file: %w", err)
	}
	jwtConfig, err := google.JWTConfigFromJSON(data, gcal.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse Google credentials file: %w", err)
	}
	log.Debugf("using Google service account %s", jwtConfig.Email)
	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(nil, jwtConfig.TokenSource(ctx))), nil
}
