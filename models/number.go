package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NumberString holds a numeric field that the API sends either as a JSON
// number or as a string. It keeps the text form used by form drafts.
type NumberString string

func (n *NumberString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("invalid numeric value %s: %w", string(b), err)
	}
	*n = NumberString(num.String())
	return nil
}

func (n NumberString) String() string {
	return string(n)
}
