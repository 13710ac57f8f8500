package builders

import "strings"

type clientConfig struct {
	typeProcessors map[string]func(any) any
}

type ClientOption func(*clientConfig)

// WithCustomTypeProcessor converts values of columns with the given database type name.
// The first processor registered for a type wins.
func WithCustomTypeProcessor(typ string, fn func(any) any) ClientOption {
	return func(cc *clientConfig) {
		t := strings.ToLower(typ)
		_, ok := cc.typeProcessors[t]
		if ok {
			return
		}

		cc.typeProcessors[t] = fn
	}
}

// WithDateProcessor renders date columns of the given type names as YYYY-MM-DD.
func WithDateProcessor(types ...string) ClientOption {
	return func(cc *clientConfig) {
		for _, typ := range types {
			WithCustomTypeProcessor(typ, ProcessDate)(cc)
		}
	}
}
