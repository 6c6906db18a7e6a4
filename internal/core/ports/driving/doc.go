// Package driving defines the interfaces through which the outer layers
// (CLI, views) call into the core services.
package driving
