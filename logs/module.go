package logs

import "github.com/reusee/dscope"

type Module struct {
	dscope.Module
}

// Span identifies one pipeline run in log records and errors.
type Span string

type spanKey struct{}

var SpanKey spanKey
