package medication

import (
	"database/sql"
	"encoding/json"
	"time"

	c "mindlog/internal/core/domain/common"
)

// String lists are stored as JSON text. A row whose list cannot be
// parsed degrades to an empty list instead of failing the read.
func encodeStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeStringList(value sql.NullString) []string {
	if !value.Valid || value.String == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(value.String), &values); err != nil {
		return []string{}
	}
	if values == nil {
		return []string{}
	}
	return values
}

func encodeOptionalString(v c.Optional[string]) sql.NullString {
	return sql.NullString{String: v.Value, Valid: v.IsPresent}
}

func encodeOptionalTime(v c.Optional[time.Time]) sql.NullTime {
	return sql.NullTime{Time: v.Value, Valid: v.IsPresent}
}
