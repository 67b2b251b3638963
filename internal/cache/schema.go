package cache

import (
	"encoding/json"

	"github.com/mizuleo/tstruct/internal/schema"
	"github.com/mizuleo/tstruct/internal/tserr"
)

// -----------------------------------------------------------------------------
// JSON serialization of schema models
// The schema types carry json tags already; these helpers exist so the
// storage format stays in one place and decode failures surface as cache
// errors rather than raw json errors.
// -----------------------------------------------------------------------------

// SerializeTable encodes a schema model for storage.
func SerializeTable(t *schema.Table) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, tserr.Wrap(tserr.ErrCacheWrite, err, "failed to serialize schema model").
			WithTable(t.Name)
	}
	return data, nil
}

// DeserializeTable decodes a stored schema model.
func DeserializeTable(data []byte) (*schema.Table, error) {
	var t schema.Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, tserr.Wrap(tserr.ErrCacheRead, err, "failed to deserialize schema model")
	}
	return &t, nil
}
