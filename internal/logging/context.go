package logging

import "context"

type ctxKey struct{}

// ContextWith returns a copy of ctx carrying key–value pairs that every
// Logger method called with that context appends to its record.
//
//	ctx = logging.ContextWith(ctx, "command", "journal add")
func ContextWith(ctx context.Context, args ...any) context.Context {
	prev := fromContext(ctx)
	merged := make([]any, 0, len(prev)+len(args))
	merged = append(merged, prev...)
	merged = append(merged, args...)
	return context.WithValue(ctx, ctxKey{}, merged)
}

func fromContext(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	args, _ := ctx.Value(ctxKey{}).([]any)
	return args
}

// withContext prepends the pairs stored in ctx to args.
func withContext(ctx context.Context, args []any) []any {
	scoped := fromContext(ctx)
	if len(scoped) == 0 {
		return args
	}
	out := make([]any, 0, len(scoped)+len(args))
	out = append(out, scoped...)
	return append(out, args...)
}
