package ports

import "context"

// FetchTask is a background fetch hook.
type FetchTask func(ctx context.Context)

// FetchQueue runs fetch hooks in the background. Tasks sharing a key run in
// the order they were enqueued.
type FetchQueue interface {
	Enqueue(key string, task FetchTask)
}
