// Package seatmap derives a flight's seat grid from its capacity.
//
// Seats are labeled row number plus column letter (1A .. NF). Columns
// A-C sit left of the aisle, D-F right of it. The last row may be
// partially filled when capacity is not a multiple of six.
package seatmap

import (
	"strconv"

	"github.com/aerovia/flightdeck/internal/domain"
)

// Columns is the fixed column alphabet of the cabin layout.
const Columns = "ABCDEF"

const seatsPerRow = len(Columns)

// Seat is a single position in the generated map.
type Seat struct {
	ID       string `json:"id"`
	Reserved bool   `json:"reserved"`
	Selected bool   `json:"selected,omitempty"`
}

// Row holds the seats of one cabin row split by the aisle.
type Row struct {
	Number int    `json:"number"`
	Front  []Seat `json:"front"` // columns A-C
	Rear   []Seat `json:"rear"`  // columns D-F
}

// Generate builds the seat map for a flight of the given capacity.
// Seats whose id appears in reservedIDs are marked reserved; an id equal
// to selectedID is marked selected (pass "" when nothing is selected).
// Reserved ids outside the map are ignored. Capacity 0 yields no rows;
// negative capacity is an error.
func Generate(capacity int, reservedIDs []string, selectedID string) ([]Row, error) {
	if capacity < 0 {
		return nil, domain.ErrInvalidCapacity
	}

	reserved := make(map[string]struct{}, len(reservedIDs))
	for _, id := range reservedIDs {
		reserved[id] = struct{}{}
	}

	rows := make([]Row, 0, (capacity+seatsPerRow-1)/seatsPerRow)
	emitted := 0
	for rowNum := 1; emitted < capacity; rowNum++ {
		row := Row{Number: rowNum}
		for i := 0; i < seatsPerRow && emitted < capacity; i++ {
			id := strconv.Itoa(rowNum) + string(Columns[i])
			_, taken := reserved[id]
			seat := Seat{ID: id, Reserved: taken, Selected: id == selectedID}
			if i < seatsPerRow/2 {
				row.Front = append(row.Front, seat)
			} else {
				row.Rear = append(row.Rear, seat)
			}
			emitted++
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ValidSeat reports whether seatID addresses a seat that exists in the
// map generated from capacity.
func ValidSeat(capacity int, seatID string) bool {
	if len(seatID) < 2 || capacity <= 0 {
		return false
	}

	col := -1
	for i := 0; i < seatsPerRow; i++ {
		if seatID[len(seatID)-1] == Columns[i] {
			col = i
			break
		}
	}
	if col < 0 {
		return false
	}

	rowPart := seatID[:len(seatID)-1]
	row, err := strconv.Atoi(rowPart)
	if err != nil || row < 1 || rowPart[0] == '0' || rowPart[0] == '+' || rowPart[0] == '-' {
		return false
	}

	// Ordinal position of the seat within the grid, 1-based.
	ordinal := (row-1)*seatsPerRow + col + 1
	return ordinal <= capacity
}
