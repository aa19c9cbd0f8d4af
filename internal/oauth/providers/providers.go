// Package providers wires the closed set of known provider adapters into a
// registry. New providers are added here, at compile time; there is no
// runtime plugin loading.
package providers

import (
	"golang.org/x/oauth2"

	"github.com/dropDatabas3/gardenauth/internal/oauth"
	"github.com/dropDatabas3/gardenauth/internal/oauth/discord"
	"github.com/dropDatabas3/gardenauth/internal/oauth/github"
	"github.com/dropDatabas3/gardenauth/internal/oauth/google"
	"github.com/dropDatabas3/gardenauth/internal/oauth/spotify"
	"github.com/dropDatabas3/gardenauth/internal/oauth/twitter"
)

// Default returns a registry with every provider this build knows about.
func Default() *oauth.Registry {
	r := oauth.NewRegistry()

	r.Register(google.Name, func(cfg *oauth2.Config, userInfoURL string) oauth.Provider {
		return google.New(cfg, userInfoURL)
	})
	r.Register(github.Name, func(cfg *oauth2.Config, userInfoURL string) oauth.Provider {
		return github.New(cfg, userInfoURL)
	})
	r.Register(twitter.Name, func(cfg *oauth2.Config, userInfoURL string) oauth.Provider {
		return twitter.New(cfg, userInfoURL)
	})
	r.Register(discord.Name, func(cfg *oauth2.Config, userInfoURL string) oauth.Provider {
		return discord.New(cfg, userInfoURL)
	})
	r.Register(spotify.Name, func(cfg *oauth2.Config, userInfoURL string) oauth.Provider {
		return spotify.New(cfg, userInfoURL)
	})

	return r
}
