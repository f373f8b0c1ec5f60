package server

import "context"

// Server is the lifecycle contract of the transport servers.
type Server interface {
	// Run serves requests until ctx is cancelled or a server fails, then
	// shuts every server down. A clean shutdown returns nil.
	Run(ctx context.Context) error
}
