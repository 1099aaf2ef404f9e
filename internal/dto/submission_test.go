package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	results := []BulkItemResult{
		{Action: ActionCreated, EventID: "a"},
		{Action: ActionCreated, Error: "rate limited"},
		{Action: ActionUpdated, EventID: "b"},
		{Action: ActionInvalid, Error: "eventName and link are required"},
		{Action: ActionSkipped},
	}

	summary := Summarize(results)

	assert.Equal(t, BulkSummary{Total: 5, Created: 2, Updated: 1, Failed: 1, Invalid: 1, Skipped: 1}, summary)
}
