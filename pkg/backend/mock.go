package backend

import (
	"context"
	"strconv"
	"sync"

	"github.com/vitaliiserbynassisterr/bug-report-bot/pkg/bugs"
)

// MockClient implements the Client interface for testing
// This enables comprehensive unit testing without a live backend
type MockClient struct {
	// mu protects all fields for thread-safe concurrent access
	mu sync.RWMutex

	// Bugs maps bug IDs to Bug records for testing
	Bugs map[string]*bugs.Bug

	// Stats is returned by GetStats when set
	Stats *bugs.Stats

	// CreateResponse is returned by CreateBug when set
	CreateResponse *CreateBugResponse

	// UpdateResponse is returned by UpdateBugStatus when set
	UpdateResponse *UpdateBugResponse

	// Error simulates backend failures for all operations when set
	Error error

	// Call counters
	CreateBugCallCount       int
	ListUserBugsCallCount    int
	GetBugCallCount          int
	GetStatsCallCount        int
	UpdateBugStatusCallCount int

	// LastDraft tracks the draft passed to the most recent CreateBug
	LastDraft *bugs.Draft

	// LastRequestedBug tracks the most recently requested bug ID
	LastRequestedBug string

	// LastStatusUpdate tracks the most recent status update arguments
	LastStatusUpdate bugs.Status
}

// NewMockClient creates a new mock backend client for testing
func NewMockClient() *MockClient {
	return &MockClient{
		Bugs: make(map[string]*bugs.Bug),
	}
}

// CreateBug records the draft and returns the configured response
func (m *MockClient) CreateBug(_ context.Context, draft *bugs.Draft) (*CreateBugResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreateBugCallCount++
	m.LastDraft = draft

	if m.Error != nil {
		return nil, m.Error
	}
	if m.CreateResponse != nil {
		return m.CreateResponse, nil
	}
	return &CreateBugResponse{
		BugID:  "BUG-" + strconv.Itoa(m.CreateBugCallCount),
		Status: string(bugs.StatusOpen),
	}, nil
}

// ListUserBugs returns every stored bug reported by the given user
func (m *MockClient) ListUserBugs(_ context.Context, telegramUserID int64, limit int) ([]bugs.Bug, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListUserBugsCallCount++

	if m.Error != nil {
		return nil, m.Error
	}

	result := []bugs.Bug{}
	for _, bug := range m.Bugs {
		if bug.Reporter.TelegramID == telegramUserID {
			result = append(result, *bug)
		}
		if len(result) >= limit {
			break
		}
	}
	return result, nil
}

// GetBug returns a stored bug or a not-found error
func (m *MockClient) GetBug(_ context.Context, bugID string) (*bugs.Bug, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetBugCallCount++
	m.LastRequestedBug = bugID

	if m.Error != nil {
		return nil, m.Error
	}

	bug, ok := m.Bugs[bugID]
	if !ok {
		return nil, &BackendError{
			Type:       "client_error",
			StatusCode: 404,
			Message:    "bug not found: " + bugID,
		}
	}
	return bug, nil
}

// GetStats returns the configured stats
func (m *MockClient) GetStats(_ context.Context) (*bugs.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.GetStatsCallCount++

	if m.Error != nil {
		return nil, m.Error
	}
	if m.Stats != nil {
		return m.Stats, nil
	}
	return &bugs.Stats{}, nil
}

// UpdateBugStatus records the update and applies it to the stored bug
func (m *MockClient) UpdateBugStatus(_ context.Context, bugID string, status bugs.Status, assignee string) (*UpdateBugResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UpdateBugStatusCallCount++
	m.LastRequestedBug = bugID
	m.LastStatusUpdate = status

	if m.Error != nil {
		return nil, m.Error
	}

	if bug, ok := m.Bugs[bugID]; ok {
		bug.Status = string(status)
		if assignee != "" {
			bug.Assignee = assignee
		}
	} else {
		return nil, &BackendError{
			Type:       "client_error",
			StatusCode: 404,
			Message:    "bug not found: " + bugID,
		}
	}

	if m.UpdateResponse != nil {
		return m.UpdateResponse, nil
	}
	return &UpdateBugResponse{Status: string(status)}, nil
}
