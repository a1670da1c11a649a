package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adphone/internal/apperr"
	"github.com/sells-group/adphone/internal/model"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListRecent(ctx context.Context, limit int) ([]model.ParseRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ParseRecord), args.Error(1)
}

func TestParseLimit(t *testing.T) {
	t.Parallel()
	r := NewReader(nil, 0)

	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{"", 0, true},
		{"  ", 0, true},
		{"2", 2, false},
		{" 7 ", 7, false},
		{"0", 0, false},
		{"100000", 100000, false},
		{"abc", 0, true},
		{"1.5", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			got, err := r.ParseLimit(tt.raw, true)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsStore(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLimit_CustomDefault(t *testing.T) {
	t.Parallel()

	got, err := NewReader(nil, 20).ParseLimit("", false)
	require.NoError(t, err)
	assert.Equal(t, 20, got)
}

func TestParseLimit_Absent(t *testing.T) {
	t.Parallel()

	got, err := NewReader(nil, 0).ParseLimit("ignored", false)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, got)
}

func TestList_NotConfigured(t *testing.T) {
	_, err := NewReader(nil, 0).List(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, apperr.IsConfiguration(err))
	assert.Equal(t, MsgNotConfigured, err.Error())
}

func TestList_MapsRecords(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

	st := &mockLister{}
	st.On("ListRecent", ctx, 2).Return([]model.ParseRecord{
		{ID: "b", URL: "https://www.avito.ru/2", Platform: model.PlatformAvito, Phone: "+7 (912) 345-67-89", Status: model.ParseStatusSuccess, Cost: 15, CreatedAt: &created},
		{ID: "a", URL: "https://www.rabota.ru/1", Platform: model.PlatformRabota, Status: model.ParseStatusFailed},
	}, nil)

	entries, err := NewReader(st, 0).List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "b", entries[0].ID)
	require.NotNil(t, entries[0].Timestamp)
	assert.Equal(t, "2026-10-19T08:30:00Z", *entries[0].Timestamp)
	assert.Equal(t, 15, entries[0].Cost)
	assert.Nil(t, entries[1].Timestamp)
	assert.Equal(t, "", entries[1].Phone)
	st.AssertExpectations(t)
}

func TestList_Empty(t *testing.T) {
	ctx := context.Background()
	st := &mockLister{}
	st.On("ListRecent", ctx, 50).Return([]model.ParseRecord{}, nil)

	entries, err := NewReader(st, 0).List(ctx, 50)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestList_StoreError(t *testing.T) {
	ctx := context.Background()
	st := &mockLister{}
	st.On("ListRecent", ctx, 5).Return(nil, errors.New("connection refused"))

	_, err := NewReader(st, 0).List(ctx, 5)
	require.Error(t, err)
	assert.True(t, apperr.IsStore(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestList_NegativeLimit(t *testing.T) {
	st := &mockLister{}

	_, err := NewReader(st, 0).List(context.Background(), -3)
	require.Error(t, err)
	assert.True(t, apperr.IsStore(err))
	st.AssertNotCalled(t, "ListRecent", mock.Anything, mock.Anything)
}
