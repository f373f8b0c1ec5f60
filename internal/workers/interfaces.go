// Package workers runs the background jobs of the form service next to the
// transport servers.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled or the job
// fails; cancellation is a clean stop and returns nil.
type Worker interface {
	Run(ctx context.Context) error
}
