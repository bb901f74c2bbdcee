package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	User   string    // user_name = User

	// Purpose filters oracle call events only.
	Purpose string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	User         string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM calls for one purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMUserUsage counts oracle calls made for one learner. Calls without a
// learner are grouped under "".
type LLMUserUsage struct {
	User     string
	Calls    int
	Failures int
}

// LLMModelUsage aggregates token counts for one model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// GradeEventData captures one graded submission.
type GradeEventData struct {
	UserName      string
	ProblemID     string
	Language      string
	Level         int
	Correct       bool
	OracleFailed  bool
	PointsAwarded int
	Penalty       int
	Feedback      string
}

// GradeEventRecord is a stored grade event.
type GradeEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	GradeEventData
}

// HintEventData captures one purchased hint.
type HintEventData struct {
	UserName  string
	ProblemID string
	Cost      int
	HintText  string
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AppendGradeEvent records a graded submission.
	AppendGradeEvent(ctx context.Context, data GradeEventData) error

	// AppendHintEvent records a purchased hint.
	AppendHintEvent(ctx context.Context, data HintEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates LLM calls per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByUser counts oracle calls per learner, busiest first.
	LLMUsageByUser(ctx context.Context) ([]LLMUserUsage, error)

	// LLMUsageByModel aggregates token counts per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// QueryGradeEvents returns grade events for a user, newest first.
	QueryGradeEvents(ctx context.Context, userName string, opts QueryOpts) ([]GradeEventRecord, error)
}
