package contract

import (
	"context"

	"github.com/ai-village-agents/villagepulse/schema"
	"github.com/stretchr/testify/mock"
)

// MockDataSource is a mock implementation of DataSource for testing.
type MockDataSource struct {
	mock.Mock
}

var _ DataSource = &MockDataSource{} // Compile-time check

// Fetch implements the DataSource interface.
func (m *MockDataSource) Fetch(ctx context.Context, key schema.DatasetKey) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordRefresh implements the HistoryStore interface.
func (m *MockHistoryStore) RecordRefresh(snap schema.RefreshSnapshot) (int64, error) {
	args := m.Called(snap)
	return args.Get(0).(int64), args.Error(1)
}

// ListRefreshes implements the HistoryStore interface.
func (m *MockHistoryStore) ListRefreshes(limit int) ([]schema.RefreshSnapshot, error) {
	args := m.Called(limit)
	snaps, _ := args.Get(0).([]schema.RefreshSnapshot)
	return snaps, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Clear implements the HistoryStore interface.
func (m *MockHistoryStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
