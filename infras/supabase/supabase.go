package supabase

import (
	"tourly/config"

	"github.com/rs/zerolog/log"
	supa "github.com/supabase-community/supabase-go"
)

// New builds the service-role Supabase client the gateway repositories share.
// The service key bypasses row-level security; per-request authorization is
// enforced by the HTTP middleware before any repository call is made.
func New(config *config.Config) *supa.Client {
	client, err := supa.NewClient(config.Supabase.URL, config.Supabase.ServiceKey, &supa.ClientOptions{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Supabase client")
	}

	log.Info().
		Str("url", config.Supabase.URL).
		Msg("Supabase client initialized")

	return client
}

// NewAuthenticated returns a client that acts with the given user's access
// token instead of the service role.
func NewAuthenticated(config *config.Config, accessToken string) (*supa.Client, error) {
	options := &supa.ClientOptions{
		Headers: map[string]string{
			"Authorization": "Bearer " + accessToken,
		},
	}

	return supa.NewClient(config.Supabase.URL, config.Supabase.AnonKey, options)
}
