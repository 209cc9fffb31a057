package dao

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON is a nullable JSON column. A nil JSON is stored as SQL NULL.
type JSON json.RawMessage

// NewJSON marshals v. A nil v yields a nil JSON.
func NewJSON(v any) (JSON, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		if len(raw) == 0 {
			return nil, nil
		}
		return JSON(raw), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal json column: %w", err)
	}
	return JSON(b), nil
}

func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[0:0], v...)
	case string:
		*j = JSON(v)
	default:
		return fmt.Errorf("scan json column: unsupported type %T", value)
	}
	return nil
}

// Unmarshal decodes the column into dst. A NULL column leaves dst untouched.
func (j JSON) Unmarshal(dst any) error {
	if len(j) == 0 {
		return nil
	}
	return json.Unmarshal(j, dst)
}

func (j JSON) Raw() json.RawMessage {
	if len(j) == 0 {
		return nil
	}
	return json.RawMessage(j)
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return fmt.Errorf("unmarshal json column: nil receiver")
	}
	*j = append((*j)[0:0], data...)
	return nil
}

// GormDataType lets AutoMigrate create a JSON column.
func (JSON) GormDataType() string {
	return "json"
}
