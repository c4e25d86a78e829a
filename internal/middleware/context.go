package middleware

import "context"

type ctxKey int

const (
	sessionKey ctxKey = iota
	htmxKey
	fallbackLangKey
)

// HTMXRequest is what htmx told us about the element that sent a request.
type HTMXRequest struct {
	Target  string // id of the element the answer is swapped into
	Trigger string // id of the element that fired, when it has one
	Boosted bool
}

// HTMXFrom returns the htmx details stored by HTMX and whether the request came from htmx.
func HTMXFrom(ctx context.Context) (HTMXRequest, bool) {
	h, ok := ctx.Value(htmxKey).(HTMXRequest)
	return h, ok
}

// IsHTMX reports whether the request was sent by htmx.
func IsHTMX(ctx context.Context) bool {
	_, ok := HTMXFrom(ctx)
	return ok
}
