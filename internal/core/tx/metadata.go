package tx

import (
	"encoding/json"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/entry"
)

// entryFields flattens a ledger entry into a generic field map for
// transaction metadata.
func entryFields(e entry.Entry) (map[string]any, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
