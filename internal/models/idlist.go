package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// IDList stores record references (exposition artworks, timeline events)
// as a jsonb array of UUIDs.
type IDList []uuid.UUID

func (l IDList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal(IDList{})
	}
	return json.Marshal(l)
}

func (l *IDList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("models: unsupported source type for IDList")
}
