package series

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnrecognizedShape reports a JSON payload whose layout matches none of
// the known dataset shapes. Callers warn and skip the table.
var ErrUnrecognizedShape = errors.New("unrecognized dataset shape")

// Decode parses a per-table JSON payload of unknown layout and returns the
// normalized, period-sorted Dataset. The accepted layouts are:
//
//   - a flat list of {period, value} records,
//   - an object with the record list under a "Data" key,
//   - a list wrapping one or more objects that carry a "Data" key, the
//     shape the INE DATOS_TABLA service responds with.
func Decode(payload []byte) (Dataset, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}

	switch v := doc.(type) {
	case map[string]interface{}:
		if inner, ok := dataList(v); ok {
			return FromRecords(toRecords(inner)), nil
		}
		return nil, ErrUnrecognizedShape

	case []interface{}:
		if len(v) == 0 {
			return nil, ErrUnrecognizedShape
		}
		if first, ok := v[0].(map[string]interface{}); ok {
			if _, wrapped := dataList(first); !wrapped {
				// Flat record list.
				return FromRecords(toRecords(v)), nil
			}
			// One or more series objects wrapping a "Data" list.
			var records []Record
			for _, elem := range v {
				obj, ok := elem.(map[string]interface{})
				if !ok {
					continue
				}
				if inner, ok := dataList(obj); ok {
					records = append(records, toRecords(inner)...)
				}
			}
			return FromRecords(records), nil
		}
		return nil, ErrUnrecognizedShape

	default:
		return nil, ErrUnrecognizedShape
	}
}

func dataList(obj map[string]interface{}) ([]interface{}, bool) {
	inner, ok := obj["Data"].([]interface{})
	return inner, ok
}

func toRecords(list []interface{}) []Record {
	records := make([]Record, 0, len(list))
	for _, elem := range list {
		if obj, ok := elem.(map[string]interface{}); ok {
			records = append(records, Record(obj))
		}
	}
	return records
}
