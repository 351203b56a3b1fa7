package tender

import (
	"encoding/csv"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// ParseListLiteral parses a Python-style list literal as found in the
// source CSV columns, e.g. "['English', 'Spanish']" or "[3, 4]". Empty
// cells and pandas NaN markers yield an empty list. Anything else that is
// not a well-formed literal is an error.
func ParseListLiteral(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return nil, nil
	}

	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("not a list literal: %q", s)
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return nil, nil
	}

	var items []string
	i := 0
	for i < len(inner) {
		for i < len(inner) && inner[i] == ' ' {
			i++
		}
		if i >= len(inner) {
			break
		}

		switch c := inner[i]; c {
		case '\'', '"':
			end := strings.IndexByte(inner[i+1:], c)
			if end < 0 {
				return nil, fmt.Errorf("unterminated string in list literal: %q", s)
			}
			items = append(items, inner[i+1:i+1+end])
			i += end + 2
		default:
			end := strings.IndexByte(inner[i:], ',')
			var token string
			if end < 0 {
				token = inner[i:]
				i = len(inner)
			} else {
				token = inner[i : i+end]
				i += end
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return nil, fmt.Errorf("empty element in list literal: %q", s)
			}
			items = append(items, token)
		}

		for i < len(inner) && inner[i] == ' ' {
			i++
		}
		if i < len(inner) {
			if inner[i] != ',' {
				return nil, fmt.Errorf("malformed list literal: %q", s)
			}
			i++
		}
	}

	return items, nil
}

// listLiteralHook converts list-literal cells into string or int slices
// during record decoding.
func listLiteralHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}

	items, err := ParseListLiteral(data.(string))
	if err != nil {
		return nil, err
	}

	if to.Elem().Kind() == reflect.Int {
		ints := make([]int, 0, len(items))
		for _, item := range items {
			n, err := strconv.Atoi(item)
			if err != nil {
				return nil, fmt.Errorf("not an integer list element: %q", item)
			}
			ints = append(ints, n)
		}
		return ints, nil
	}

	return items, nil
}

func decodeRecord(row map[string]string, target any) error {
	cfg := &mapstructure.DecoderConfig{
		DecodeHook:       listLiteralHook,
		WeaklyTypedInput: true,
		Result:           target,
		TagName:          "csv",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(row)
}

// readRows reads a CSV stream into header-keyed row maps.
func readRows(r io.Reader, required ...string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for idx, name := range header {
		columns[strings.TrimSpace(name)] = idx
	}

	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		row := make(map[string]string, len(columns))
		for name, idx := range columns {
			if idx < len(record) {
				row[name] = record[idx]
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
