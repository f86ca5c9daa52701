package ports

import "context"

// Handler is the callable value a dispatch input resolves to at composition
// time. Invoking it sends one action through the host's dispatch channel.
type Handler func(ctx context.Context, payload map[string]any) error

// StateSource reads values for state-sourced inputs. Hosts adapt their state
// tree to this interface; the core never touches the tree directly.
type StateSource interface {
	// Value returns the current value for a state-sourced input name.
	// The second return is false when the source has no value for it.
	Value(name string) (any, bool)
}

// Dispatcher sends named actions into the host's store runtime. The core only
// ever writes state through this channel.
type Dispatcher interface {
	Dispatch(ctx context.Context, action string, payload map[string]any) error
}

// Renderer turns markdown into presentable output. Implemented by the
// terminal presentation layer; kept as a port so reports can render anywhere.
type Renderer interface {
	Render(markdown string) (string, error)
}
