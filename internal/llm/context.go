package llm

import "context"

// Purpose labels an oracle call in the event log.
type Purpose string

const (
	PurposeProblemGen Purpose = "problem-gen"
	PurposeGrade      Purpose = "grade"
	PurposeHint       Purpose = "hint"
	PurposeUnknown    Purpose = "unknown"
)

// Purposes lists the labels the app itself produces.
var Purposes = []Purpose{PurposeProblemGen, PurposeGrade, PurposeHint}

type contextKey int

const (
	purposeKey contextKey = iota
	userKey
	meterKey
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, p Purpose) context.Context {
	return context.WithValue(ctx, purposeKey, p)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) Purpose {
	if v, ok := ctx.Value(purposeKey).(Purpose); ok {
		return v
	}
	return PurposeUnknown
}

// WithUser attributes oracle calls made under ctx to a learner.
func WithUser(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, userKey, name)
}

// UserFrom returns the learner set by WithUser, or "".
func UserFrom(ctx context.Context) string {
	v, _ := ctx.Value(userKey).(string)
	return v
}
