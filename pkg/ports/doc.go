// Package ports defines the interfaces graft expects its host to implement:
// a read-only state source, a dispatch channel, and a renderer.
//
// The contract system itself is static; at composition time these ports are
// the only paths to the outside. State is reached read-only through
// StateSource, mutated only through Dispatcher, and the core never holds the
// state tree itself.
//
// The package also ships reusable contract test suites (RunStateSourceContract,
// RunDispatcherContract) so host adapters can prove conformance.
package ports
