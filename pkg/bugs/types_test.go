package bugs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    Status
		wantErr bool
	}{
		{"FIXED", StatusFixed, false},
		{"fixed", StatusFixed, false},
		{" in_progress ", StatusInProgress, false},
		{"OPEN", StatusOpen, false},
		{"CLOSED", StatusClosed, false},
		{"RESOLVED", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "invalid status")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePriority(t *testing.T) {
	got, err := ParsePriority("critical")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, got)

	_, err = ParsePriority("URGENT")
	require.Error(t, err)
}

func TestParseEnvironment(t *testing.T) {
	got, err := ParseEnvironment("prod")
	require.NoError(t, err)
	assert.Equal(t, EnvironmentProd, got)

	_, err = ParseEnvironment("STAGING")
	require.Error(t, err)
}

func TestBug_Key(t *testing.T) {
	assert.Equal(t, "BUG-042", (&Bug{BugID: "BUG-042", ID: "651f"}).Key())
	assert.Equal(t, "651f", (&Bug{ID: "651f"}).Key())
	assert.Equal(t, "UNKNOWN", (&Bug{}).Key())
}
