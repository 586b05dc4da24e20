package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const llmEventsTable = "llm_events"

var (
	// llmEventsColumns records every completion call for cost tracking and debugging.
	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString, Default: ""},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}

	llmEventsTableDef = &schema.Table{
		Name:       llmEventsTable,
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmevent_timestamp", Columns: []*schema.Column{llmEventsColumns[1]}},
			{Name: "llmevent_session_id", Columns: []*schema.Column{llmEventsColumns[2]}},
			{Name: "llmevent_purpose", Columns: []*schema.Column{llmEventsColumns[5]}},
		},
	}

	tables = []*schema.Table{llmEventsTableDef}
)
