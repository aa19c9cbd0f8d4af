package oauth

import (
	"fmt"
	"net/url"

	"golang.org/x/oauth2"

	"github.com/dropDatabas3/gardenauth/internal/config"
	"github.com/dropDatabas3/gardenauth/internal/observability/logger"
)

// BuildProviders materializes adapters for every configured provider.
//
// A provider present in config but absent from the registry is skipped with a
// warning: that is a deployment choice, not a fatal condition. A provider
// with a malformed URL aborts the build: an adapter must never be constructed
// from an invalid config.
func BuildProviders(reg *Registry, cfgs map[string]config.Provider) (map[string]Provider, error) {
	providers := make(map[string]Provider, len(cfgs))

	for name, pc := range cfgs {
		factory, ok := reg.Resolve(name)
		if !ok {
			logger.L().Warn("configured provider not in registry, skipping",
				logger.Provider(name))
			continue
		}

		if err := validateEndpoints(name, pc); err != nil {
			return nil, err
		}

		cc := &oauth2.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			RedirectURL:  pc.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  pc.AuthURL,
				TokenURL: pc.TokenURL,
			},
		}

		p := factory(cc, pc.UserInfoURL)
		// The adapter owns the scope list; the client carries it so the
		// authorize URL includes it verbatim.
		cc.Scopes = p.Scopes()

		providers[name] = p
	}

	return providers, nil
}

func validateEndpoints(name string, pc config.Provider) error {
	urls := []struct {
		field string
		raw   string
	}{
		{"auth_url", pc.AuthURL},
		{"token_url", pc.TokenURL},
		{"redirect_url", pc.RedirectURL},
		{"user_info_url", pc.UserInfoURL},
	}
	for _, u := range urls {
		parsed, err := url.Parse(u.raw)
		if err != nil {
			return fmt.Errorf("oauth: provider %s: invalid %s %q: %w", name, u.field, u.raw, err)
		}
		if !parsed.IsAbs() || parsed.Host == "" {
			return fmt.Errorf("oauth: provider %s: %s %q is not an absolute URL", name, u.field, u.raw)
		}
	}
	return nil
}
