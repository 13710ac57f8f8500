package mock

import (
	"context"
	"fmt"

	"github.com/kndndrj/dbexport/core"
)

// Call is a query received by the mocked driver.
type Call struct {
	Query string
	Args  []any
}

var _ core.Driver = (*Driver)(nil)

type Driver struct {
	data    []core.Row
	config  *adapterConfig
	calls   []Call
	closed  int
	streams []*ResultStream
}

func (d *Driver) Query(ctx context.Context, query string, args ...any) (core.ResultStream, error) {
	d.calls = append(d.calls, Call{Query: query, Args: args})

	eff, ok := d.config.querySideEffects[query]
	if ok {
		err := eff(ctx)
		if err != nil {
			return nil, fmt.Errorf("side effect error: %w", err)
		}
	}

	stream := NewResultStream(d.data, d.config.resultStreamOptions...)
	d.streams = append(d.streams, stream)

	return stream, nil
}

func (d *Driver) Placeholder(n int) string {
	return d.config.placeholder(n)
}

func (d *Driver) Close() error {
	d.closed++
	return nil
}

// Calls returns all queries received so far.
func (d *Driver) Calls() []Call {
	return d.calls
}

// CloseCount returns how many times the driver was closed.
func (d *Driver) CloseCount() int {
	return d.closed
}

// Streams returns all result streams handed out by the driver.
func (d *Driver) Streams() []*ResultStream {
	return d.streams
}

var _ core.Adapter = (*Adapter)(nil)

type Adapter struct {
	data    []core.Row
	config  *adapterConfig
	drivers []*Driver
}

func NewAdapter(data []core.Row, opts ...AdapterOption) *Adapter {
	config := &adapterConfig{
		querySideEffects: make(map[string]func(context.Context) error),
		placeholder:      dollarPlaceholder,

		resultStreamOptions: []ResultStreamOption{},
	}
	for _, opt := range opts {
		opt(config)
	}

	return &Adapter{
		data:   data,
		config: config,
	}
}

func (a *Adapter) Connect(_ context.Context, _ *core.ConnectionParams) (core.Driver, error) {
	if a.config.connectErr != nil {
		return nil, a.config.connectErr
	}

	d := &Driver{
		data:   a.data,
		config: a.config,
	}
	a.drivers = append(a.drivers, d)

	return d, nil
}

// LastDriver returns the most recently connected driver or nil.
func (a *Adapter) LastDriver() *Driver {
	if len(a.drivers) == 0 {
		return nil
	}
	return a.drivers[len(a.drivers)-1]
}
