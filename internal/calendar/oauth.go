package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenSourceFromFiles builds a read-only calendar token source from an OAuth
// client secrets file and a previously saved token. Refreshed tokens are not
// written back.
func TokenSourceFromFiles(ctx context.Context, credentialsFile, tokenFile string) (oauth2.TokenSource, error) {
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secret file: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, gcal.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secret file: %w", err)
	}
	f, err := os.Open(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read token file: %w", err)
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("unable to parse token file: %w", err)
	}
	return cfg.TokenSource(ctx, tok), nil
}

// WithTokenFiles is the client option form of TokenSourceFromFiles.
func WithTokenFiles(ctx context.Context, credentialsFile, tokenFile string) (option.ClientOption, error) {
	ts, err := TokenSourceFromFiles(ctx, credentialsFile, tokenFile)
	if err != nil {
		return nil, err
	}
	return option.WithTokenSource(ts), nil
}
