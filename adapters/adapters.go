package adapters

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/kndndrj/dbexport/core"
)

var (
	errNoValidTypeAliases   = errors.New("no valid type aliases provided")
	ErrUnsupportedTypeAlias = errors.New("no driver registered for provided type alias")
)

// registeredAdapters holds implemented adapters - specific adapters register themselves in their init functions.
// The main reason is to be able to compile the binary without unsupported os/arch of specific drivers.
var registeredAdapters = make(map[string]core.Adapter)

// register registers a new adapter for specific database
func register(adapter core.Adapter, aliases ...string) error {
	if len(aliases) < 1 {
		return errNoValidTypeAliases
	}

	invalidCount := 0
	for _, alias := range aliases {
		if alias == "" {
			invalidCount++
			continue
		}
		registeredAdapters[alias] = adapter
	}

	if invalidCount == len(aliases) {
		return errNoValidTypeAliases
	}

	return nil
}

// Mux is an interface to all internal adapters.
type Mux struct{}

func (*Mux) GetAdapter(typ string) (core.Adapter, error) {
	value, ok := registeredAdapters[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedTypeAlias, typ)
	}

	return value, nil
}

// Types lists all registered type aliases.
func (*Mux) Types() []string {
	out := make([]string, 0, len(registeredAdapters))
	for k := range registeredAdapters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NewConnection is a wrapper around core.NewConnection that uses the internal mux for
// adapter registration.
func NewConnection(ctx context.Context, params *core.ConnectionParams) (*core.Connection, error) {
	mux := new(Mux)
	adapter, err := mux.GetAdapter(params.Expand().Type)
	if err != nil {
		return nil, fmt.Errorf("%w: Mux.GetAdapter: %w (supported: %s)", core.ErrConnection, err, strings.Join(mux.Types(), ", "))
	}

	c, err := core.NewConnection(ctx, params, adapter)
	if err != nil {
		return nil, fmt.Errorf("core.NewConnection: %w", err)
	}

	return c, nil
}
