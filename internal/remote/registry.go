package remote

import (
	"fmt"
	"log/slog"
	"net/http"
)

// Kind identifies a remote store implementation.
type Kind string

const (
	// KindSheets is the spreadsheet web API store.
	KindSheets Kind = "sheets"
	// KindMemory is the in-process store used by tests and demo mode.
	KindMemory Kind = "memory"
)

// Config holds remote store configuration.
type Config struct {
	// Kind selects the store implementation: "sheets" (default) or
	// "memory".
	Kind Kind `yaml:"kind" json:"kind"`

	// BaseURL of the spreadsheet web API.
	BaseURL string `yaml:"base_url" json:"base_url,omitempty"`

	// SheetID identifies the workbook holding the board.
	SheetID string `yaml:"sheet_id" json:"sheet_id,omitempty"`

	// Client is the authenticated HTTP session used by network-backed
	// stores. Callers own authentication: stores never acquire or
	// refresh tokens themselves.
	Client *http.Client `yaml:"-" json:"-"`

	// Logger defaults to slog.Default().
	Logger *slog.Logger `yaml:"-" json:"-"`
}

// NewStoreFunc is a constructor function for creating a remote store.
// The factory calls these to avoid import cycles; implementations
// register themselves at init time.
type NewStoreFunc func(cfg Config) (Store, error)

// Store constructors registered by implementation packages.
var storeConstructors = map[Kind]NewStoreFunc{}

// Register registers a store constructor.
// Called from init() in implementation packages.
func Register(kind Kind, constructor NewStoreFunc) {
	storeConstructors[kind] = constructor
}

// New creates a remote store for the given configuration.
// An empty Kind defaults to the sheets store.
func New(cfg Config) (Store, error) {
	kind := cfg.Kind
	if kind == "" {
		kind = KindSheets
	}

	constructor, ok := storeConstructors[kind]
	if !ok {
		return nil, fmt.Errorf("no remote store registered for %q (registered: %v)", kind, registeredKinds())
	}

	return constructor(cfg)
}

func registeredKinds() []Kind {
	var kinds []Kind
	for k := range storeConstructors {
		kinds = append(kinds, k)
	}
	return kinds
}
