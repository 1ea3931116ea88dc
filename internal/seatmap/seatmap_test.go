package seatmap

import (
	"testing"

	"github.com/aerovia/flightdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectIDs(rows []Row) []string {
	var ids []string
	for _, row := range rows {
		for _, s := range row.Front {
			ids = append(ids, s.ID)
		}
		for _, s := range row.Rear {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func TestGenerate_ExactCapacity(t *testing.T) {
	for _, capacity := range []int{1, 2, 3, 5, 6, 7, 11, 12, 90, 180} {
		rows, err := Generate(capacity, nil, "")
		require.NoError(t, err)

		ids := collectIDs(rows)
		assert.Len(t, ids, capacity, "capacity %d", capacity)

		seen := make(map[string]bool)
		for _, id := range ids {
			assert.False(t, seen[id], "duplicate seat %s at capacity %d", id, capacity)
			seen[id] = true
		}

		wantRows := (capacity + 5) / 6
		assert.Len(t, rows, wantRows, "capacity %d", capacity)
	}
}

func TestGenerate_SingleRowLayout(t *testing.T) {
	rows, err := Generate(6, nil, "")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	front := []string{rows[0].Front[0].ID, rows[0].Front[1].ID, rows[0].Front[2].ID}
	rear := []string{rows[0].Rear[0].ID, rows[0].Rear[1].ID, rows[0].Rear[2].ID}
	assert.Equal(t, []string{"1A", "1B", "1C"}, front)
	assert.Equal(t, []string{"1D", "1E", "1F"}, rear)
}

func TestGenerate_PartialLastRow(t *testing.T) {
	rows, err := Generate(8, nil, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Len(t, rows[1].Front, 2)
	assert.Empty(t, rows[1].Rear)
	assert.Equal(t, "2A", rows[1].Front[0].ID)
	assert.Equal(t, "2B", rows[1].Front[1].ID)
}

func TestGenerate_ReservedAndSelected(t *testing.T) {
	rows, err := Generate(12, []string{"1B", "2F"}, "2E")
	require.NoError(t, err)

	flat := make(map[string]Seat)
	for _, row := range rows {
		for _, s := range append(row.Front, row.Rear...) {
			flat[s.ID] = s
		}
	}

	assert.True(t, flat["1B"].Reserved)
	assert.True(t, flat["2F"].Reserved)
	assert.False(t, flat["1A"].Reserved)
	assert.True(t, flat["2E"].Selected)
	assert.False(t, flat["2E"].Reserved)
}

func TestGenerate_UnknownReservedSeatIgnored(t *testing.T) {
	rows, err := Generate(6, []string{"9Z", "40A"}, "")
	require.NoError(t, err)
	assert.Len(t, collectIDs(rows), 6)
}

func TestGenerate_ZeroCapacity(t *testing.T) {
	rows, err := Generate(0, nil, "")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestGenerate_NegativeCapacity(t *testing.T) {
	_, err := Generate(-1, nil, "")
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)
}

func TestValidSeat(t *testing.T) {
	tests := []struct {
		capacity int
		seat     string
		want     bool
	}{
		{6, "1A", true},
		{6, "1F", true},
		{6, "2A", false},
		{7, "2A", true},
		{7, "2B", false},
		{180, "30F", true},
		{180, "31A", false},
		{6, "1G", false},
		{6, "A1", false},
		{6, "", false},
		{6, "1", false},
		{6, "0A", false},
		{6, "01A", false},
		{6, "-1A", false},
		{0, "1A", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidSeat(tt.capacity, tt.seat), "capacity=%d seat=%q", tt.capacity, tt.seat)
	}
}
