package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/randalmurphal/sheetboard/internal/cache"
	"github.com/randalmurphal/sheetboard/internal/config"
	"github.com/randalmurphal/sheetboard/internal/engine"
	"github.com/randalmurphal/sheetboard/internal/events"
	"github.com/randalmurphal/sheetboard/internal/remote"
)

// session wires config, remote store, snapshot cache and engine
// together for one command invocation.
type session struct {
	cfg       *config.Config
	engine    *engine.Engine
	remote    remote.Store
	publisher *events.MemoryPublisher
	cache     *cache.Cache
}

// newSession loads configuration, builds the remote store with an
// authenticated HTTP client, and refreshes once so commands render
// current data. When the remote is unreachable it falls back to the
// cached snapshot instead of failing the whole command; mutations
// against the unreachable remote still fail individually.
func newSession(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	token, err := cfg.Auth.ResolveToken()
	if err != nil {
		return nil, err
	}

	remoteCfg := cfg.Remote
	remoteCfg.Client = httpClient(token)
	store, err := remote.New(remoteCfg)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:       cfg,
		remote:    store,
		publisher: events.NewMemoryPublisher(),
	}

	// A broken cache only costs the offline fallback, never the command.
	if path, err := cfg.ResolvedCachePath(); err == nil {
		if c, err := cache.Open(path); err == nil {
			s.cache = c
		} else if verbose {
			fmt.Fprintf(os.Stderr, "snapshot cache unavailable: %v\n", err)
		}
	}

	engCfg := engine.Config{
		Remote:          store,
		Publisher:       s.publisher,
		RefreshInterval: cfg.RefreshInterval,
	}
	if s.cache != nil {
		engCfg.Cache = s.cache
	}
	eng, err := engine.New(engCfg)
	if err != nil {
		s.close()
		return nil, err
	}
	s.engine = eng

	if err := eng.Refresh(ctx); err != nil {
		n, fetchedAt, cacheErr := eng.LoadCache()
		if cacheErr != nil || n == 0 {
			s.close()
			return nil, err
		}
		fmt.Fprintf(os.Stderr, "⚠️  Remote unreachable, showing cached snapshot from %s ago\n",
			time.Since(fetchedAt).Round(time.Second))
	}

	return s, nil
}

func (s *session) close() {
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.remote != nil {
		_ = s.remote.Close()
	}
}

// viewer returns the email rendered views filter private tasks by.
func (s *session) viewer() string {
	return s.cfg.ViewerEmail
}

// loadConfig resolves the configuration, honoring --config.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFrom(cfgFile)
	}
	return config.Load()
}

// httpClient builds the HTTP session remote stores use. The bearer
// token is attached here; stores never see credentials.
func httpClient(token string) *http.Client {
	client := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		client.Transport = &bearerTransport{token: token, base: http.DefaultTransport}
	}
	return client
}

// bearerTransport adds an Authorization header to every request.
type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(clone)
}
