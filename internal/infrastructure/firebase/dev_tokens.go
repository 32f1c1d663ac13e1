package firebase

import (
	"context"
)

// GenerateLongLivedToken mints a development token for the given uid. With a
// web API key configured it is exchanged for a real ID token so it passes the
// same verification path as production tokens.
func (f *FirebaseAuthClient) GenerateLongLivedToken(ctx context.Context, uid string) (string, error) {
	customToken, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}

	if f.apiKey != "" {
		idToken, err := f.exchangeCustomTokenForIDToken(ctx, customToken)
		if err != nil {
			return "", err
		}
		return idToken, nil
	}

	return customToken, nil
}
