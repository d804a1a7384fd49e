// Package importer parses equipment-list CSV files into a vehicle's places
// and items.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// ItemRow is one imported item.
type ItemRow struct {
	Name     string
	Quantity int
	Note     string
}

// PlaceGroup collects the items of one place, in file order.
type PlaceGroup struct {
	Name  string
	Items []ItemRow
}

// Result is a fully parsed import file.
type Result struct {
	VehicleName string
	Places      []PlaceGroup
}

// Two accepted header layouts. Variant A carries the vehicle name in the
// first column of every row; variant B omits it and the vehicle is named
// after the file.
var (
	headerWithVehicle    = []string{"brandbil", "rum/låge", "udstyr", "antal", "note"}
	headerWithoutVehicle = []string{"rum/låge", "udstyr", "antal", "note"}
)

// ErrBadHeader is returned when the CSV header matches neither layout.
var ErrBadHeader = fmt.Errorf(
	"unexpected header, want %q or %q",
	strings.Join(headerWithVehicle, ","), strings.Join(headerWithoutVehicle, ","))

// Parse reads a CSV equipment list. filename is only used to derive the
// vehicle name for the header variant that lacks a vehicle column.
func Parse(r io.Reader, filename string) (*Result, error) {
	reader := csv.NewReader(stripBOM(r))
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var hasVehicleColumn bool
	switch {
	case equal(header, headerWithVehicle):
		hasVehicleColumn = true
	case equal(header, headerWithoutVehicle):
		hasVehicleColumn = false
	default:
		return nil, ErrBadHeader
	}

	result := &Result{}
	groups := map[string]int{}

	for _, row := range rows[1:] {
		if len(row) < len(headerWithoutVehicle) {
			continue
		}

		var placeName, itemName, qty, note string
		if hasVehicleColumn {
			if len(row) < len(headerWithVehicle)-1 {
				continue
			}
			if result.VehicleName == "" {
				result.VehicleName = strings.TrimSpace(row[0])
			}
			placeName, itemName, qty = strings.TrimSpace(row[1]), strings.TrimSpace(row[2]), strings.TrimSpace(row[3])
			if len(row) > 4 {
				note = strings.TrimSpace(row[4])
			}
		} else {
			placeName, itemName, qty = strings.TrimSpace(row[0]), strings.TrimSpace(row[1]), strings.TrimSpace(row[2])
			if len(row) > 3 {
				note = strings.TrimSpace(row[3])
			}
		}

		if itemName == "" {
			continue
		}
		if placeName == "" {
			placeName = "Ukendt"
		}

		quantity, err := strconv.Atoi(qty)
		if err != nil || quantity < 1 {
			quantity = 1
		}

		idx, ok := groups[placeName]
		if !ok {
			idx = len(result.Places)
			groups[placeName] = idx
			result.Places = append(result.Places, PlaceGroup{Name: placeName})
		}
		result.Places[idx].Items = append(result.Places[idx].Items, ItemRow{
			Name:     itemName,
			Quantity: quantity,
			Note:     note,
		})
	}

	if !hasVehicleColumn || result.VehicleName == "" {
		stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		result.VehicleName = "Import " + stem
	}

	return result, nil
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// stripBOM skips a UTF-8 byte order mark, which Excel likes to prepend.
func stripBOM(r io.Reader) io.Reader {
	return &bomReader{r: r}
}

type bomReader struct {
	r       io.Reader
	checked bool
}

func (b *bomReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true
		head := make([]byte, 3)
		n, err := io.ReadFull(b.r, head)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return 0, err
		}
		head = head[:n]
		if !(n == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF) {
			b.r = io.MultiReader(strings.NewReader(string(head)), b.r)
		}
	}
	return b.r.Read(p)
}
