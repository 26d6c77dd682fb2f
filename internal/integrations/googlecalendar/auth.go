package googlecalendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

// NewHTTPClient создает авторизованный HTTP клиент.
// Без tokenFile credentialsFile считается ключом сервисного аккаунта,
// иначе это OAuth client и сохраненный токен пользователя
func NewHTTPClient(ctx context.Context, credentialsFile, tokenFile string) (*http.Client, error) {
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials file: %v", ErrCredentials, err)
	}

	if tokenFile == "" {
		jwtConfig, err := google.JWTConfigFromJSON(credentials, calendar.CalendarScope)
		if err != nil {
			return nil, fmt.Errorf("%w: parse service account: %v", ErrCredentials, err)
		}
		return jwtConfig.Client(ctx), nil
	}

	oauthConfig, err := google.ConfigFromJSON(credentials, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse oauth client: %v", ErrCredentials, err)
	}

	rawToken, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read token file: %v", ErrCredentials, err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(rawToken, &token); err != nil {
		return nil, fmt.Errorf("%w: decode token file: %v", ErrCredentials, err)
	}

	return oauthConfig.Client(ctx, &token), nil
}
