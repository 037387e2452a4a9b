package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/sales-analytics/internal/model"
)

func TestSplitActive_ExactStatusMatch(t *testing.T) {
	records := []model.Record{
		{OrderID: "1", Status: "Completed"},
		{OrderID: "2", Status: "Cancelled"},
		{OrderID: "3", Status: "cancelled"}, // case differs: stays active
		{OrderID: "4", Status: ""},          // unknown status: stays active
		{OrderID: "5", Status: "Pending"},
	}

	active, cancelled := SplitActive(records)
	assert.Len(t, active, 4)
	assert.Len(t, cancelled, 1)
	assert.Equal(t, "2", cancelled[0].OrderID)
}

func TestSplitActive_InputNotMutated(t *testing.T) {
	records := []model.Record{
		{OrderID: "1", Status: "Cancelled"},
		{OrderID: "2", Status: "Shipped"},
	}

	active, cancelled := SplitActive(records)
	assert.Len(t, active, 1)
	assert.Len(t, cancelled, 1)
	assert.Equal(t, "1", records[0].OrderID)
	assert.Equal(t, "2", records[1].OrderID)
}

func TestSplitActive_Empty(t *testing.T) {
	active, cancelled := SplitActive(nil)
	assert.Empty(t, active)
	assert.Empty(t, cancelled)
}
