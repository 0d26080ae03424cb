// Package symbols loads the ticker catalog offered to the stock picker from a
// Symbol/Name CSV export and keeps it fresh in memory.
package symbols

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ndewijer/portfolio-vis/internal/model"
)

const (
	symbolColumn = "Symbol"
	nameColumn   = "Name"
)

// ErrMissingColumn is returned when the CSV header lacks the Symbol or Name column.
var ErrMissingColumn = errors.New("missing column")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV reads a CSV with a header row containing "Symbol" and "Name" columns.
// Rows with an empty symbol or name are skipped, as are footnote rows whose name
// contains "Note". Other columns are ignored.
func ParseCSV(r io.Reader) ([]model.SymbolInfo, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []model.SymbolInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	symbolIdx, nameIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case symbolColumn:
			symbolIdx = i
		case nameColumn:
			nameIdx = i
		}
	}
	if symbolIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, symbolColumn)
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, nameColumn)
	}

	entries := []model.SymbolInfo{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		symbol := field(record, symbolIdx)
		name := field(record, nameIdx)
		if symbol == "" || name == "" || strings.Contains(name, "Note") {
			continue
		}
		entries = append(entries, model.SymbolInfo{Symbol: symbol, Name: name})
	}
	return entries, nil
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// LoadFile parses the CSV at path.
func LoadFile(path string) ([]model.SymbolInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// WriteJSON writes entries as the indented JSON array the frontend bundles.
func WriteJSON(w io.Writer, entries []model.SymbolInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// Convert turns the CSV at inPath into a JSON file at outPath and returns the number of
// symbols written.
func Convert(inPath, outPath string) (int, error) {
	entries, err := LoadFile(inPath)
	if err != nil {
		return 0, err
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, err
	}
	if err := WriteJSON(out, entries); err != nil {
		out.Close()
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}
	return len(entries), nil
}
