package orion

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AuthConfig
		wantErr string
	}{
		{
			name: "valid",
			cfg: AuthConfig{
				TokenURL:     "https://idp.example.com/token",
				ClientID:     "orion-client",
				ClientSecret: "s3cret",
			},
		},
		{
			name:    "missing token url",
			cfg:     AuthConfig{ClientID: "orion-client", ClientSecret: "s3cret"},
			wantErr: "token URL is required",
		},
		{
			name:    "missing client id",
			cfg:     AuthConfig{TokenURL: "https://idp.example.com/token", ClientSecret: "s3cret"},
			wantErr: "client ID is required",
		},
		{
			name:    "missing client secret",
			cfg:     AuthConfig{TokenURL: "https://idp.example.com/token", ClientID: "orion-client"},
			wantErr: "client secret is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAuthWrapInjectsBearerToken(t *testing.T) {
	tokenCalls := 0
	idp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"test-token-abc","token_type":"Bearer","expires_in":3600}`))
	}))
	defer idp.Close()

	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer api.Close()

	cfg := &AuthConfig{
		TokenURL:     idp.URL,
		ClientID:     "orion-client",
		ClientSecret: "s3cret",
	}
	client := cfg.wrap(&http.Client{})

	resp, err := client.Get(api.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1, tokenCalls)
	assert.Equal(t, "Bearer test-token-abc", gotAuth)
}
