// internal/notify/context.go
package notify

import "context"

type contextKey struct{}

func NewContext(ctx context.Context, q *Queue) context.Context {
	return context.WithValue(ctx, contextKey{}, q)
}

func FromContext(ctx context.Context) (*Queue, bool) {
	q, ok := ctx.Value(contextKey{}).(*Queue)
	return q, ok && q != nil
}

// MustFromContext panics when no queue was installed; that is a wiring bug.
func MustFromContext(ctx context.Context) *Queue {
	q, ok := FromContext(ctx)
	if !ok {
		panic("notify: no notification queue in context")
	}
	return q
}
