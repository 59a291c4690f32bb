package application

import "context"

// Worker is a periodic background task such as the reorder scan.
// Implementations must run until the context is canceled.
type Worker interface {
	Start(ctx context.Context)
}
