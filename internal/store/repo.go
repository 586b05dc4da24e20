package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	Purpose   string // exact purpose match ("" = any)
	SessionID string // exact session match ("" = any)
}

// LLMRequestEventData captures the data for a single completion call.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored completion call.
type LLMEventRecord struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to completion events.
type EventRepo interface {
	// AppendLLMRequest records a completion call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsageByPurpose aggregates usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// NopEventRepo discards writes and returns empty results. Used when the
// database cannot be opened so the chat keeps working without an audit log.
type NopEventRepo struct{}

var _ EventRepo = NopEventRepo{}

func (NopEventRepo) AppendLLMRequest(context.Context, LLMRequestEventData) error { return nil }

func (NopEventRepo) QueryLLMEvents(context.Context, QueryOpts) ([]LLMEventRecord, error) {
	return nil, nil
}

func (NopEventRepo) GetLLMEvent(context.Context, int) (*LLMEventRecord, error) { return nil, nil }

func (NopEventRepo) LLMUsageByPurpose(context.Context) ([]PurposeUsage, error) { return nil, nil }

func (NopEventRepo) LLMUsageByModel(context.Context) ([]ModelUsage, error) { return nil, nil }
