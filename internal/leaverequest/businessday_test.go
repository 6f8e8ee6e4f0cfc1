package leaverequest_test

import (
	"testing"
	"time"

	"github.com/dapphari007/LMS/internal/leaverequest"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, _ := time.ParseInLocation("2006-01-02", s, time.UTC)
	return d
}

func TestCountBusinessDays(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		holidays []time.Time
		want     string
	}{
		{name: "full work week", start: "2030-09-02", end: "2030-09-06", want: "5"},
		{name: "weekend excluded", start: "2030-09-06", end: "2030-09-09", want: "2"},
		{name: "weekend only", start: "2030-09-07", end: "2030-09-08", want: "0"},
		{name: "single day", start: "2030-09-03", end: "2030-09-03", want: "1"},
		{
			name:     "holiday excluded",
			start:    "2030-09-02",
			end:      "2030-09-06",
			holidays: []time.Time{day("2030-09-04")},
			want:     "4",
		},
		{
			name:     "holiday on weekend does not double count",
			start:    "2030-09-06",
			end:      "2030-09-09",
			holidays: []time.Time{day("2030-09-07")},
			want:     "2",
		},
		{name: "two calendar weeks", start: "2030-09-02", end: "2030-09-13", want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := leaverequest.CountBusinessDays(day(tt.start), day(tt.end), tt.holidays)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestWorkflowMetadata_Levels(t *testing.T) {
	t.Run("next required level skips completed ones", func(t *testing.T) {
		m := leaverequest.WorkflowMetadata{
			RequiredApprovalLevels: []int{1, 3},
			CurrentApprovalLevel:   1,
		}
		assert.Equal(t, 3, m.NextRequiredLevel())
	})

	t.Run("next required level is zero when done", func(t *testing.T) {
		m := leaverequest.WorkflowMetadata{
			RequiredApprovalLevels: []int{1, 3},
			CurrentApprovalLevel:   3,
		}
		assert.Equal(t, 0, m.NextRequiredLevel())
	})

	t.Run("highest required level", func(t *testing.T) {
		m := leaverequest.WorkflowMetadata{RequiredApprovalLevels: []int{2, 4}}
		assert.Equal(t, 4, m.HighestRequiredLevel())
		assert.Equal(t, 0, leaverequest.WorkflowMetadata{}.HighestRequiredLevel())
	})
}
