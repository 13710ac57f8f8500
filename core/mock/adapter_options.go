package mock

import (
	"context"
	"fmt"
)

type adapterConfig struct {
	querySideEffects map[string]func(context.Context) error
	connectErr       error
	placeholder      func(int) string

	resultStreamOptions []ResultStreamOption
}

type AdapterOption func(*adapterConfig)

// AdapterWithQuerySideEffect runs the side effect when the rendered query matches.
// An error returned from the side effect fails the query.
func AdapterWithQuerySideEffect(query string, sideEffect func(context.Context) error) AdapterOption {
	return func(c *adapterConfig) {
		_, ok := c.querySideEffects[query]
		if ok {
			panic("side effect already registered for query: " + query)
		}

		c.querySideEffects[query] = sideEffect
	}
}

// AdapterWithConnectError makes every Connect call fail.
func AdapterWithConnectError(err error) AdapterOption {
	return func(c *adapterConfig) {
		c.connectErr = err
	}
}

// AdapterWithPlaceholder overrides the default "$n" bind markers.
func AdapterWithPlaceholder(fn func(int) string) AdapterOption {
	return func(c *adapterConfig) {
		c.placeholder = fn
	}
}

func AdapterWithResultStreamOpts(opts ...ResultStreamOption) AdapterOption {
	return func(c *adapterConfig) {
		c.resultStreamOptions = append(c.resultStreamOptions, opts...)
	}
}

func dollarPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}
