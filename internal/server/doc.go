// Package server runs the transport servers of the form service.
//
// The HTTP API and the optional gRPC health service run side by side under
// one errgroup. Both are shut down gracefully when the context passed to
// Run is cancelled or either server fails.
package server
