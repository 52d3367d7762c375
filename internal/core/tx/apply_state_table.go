package tx

import (
	"encoding/hex"
	"fmt"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/entry"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/keylet"
)

// Action describes how a tracked entry was touched.
type Action int

const (
	ActionCache Action = iota
	ActionInsert
	ActionUpdate
	ActionErase
)

func (a Action) String() string {
	switch a {
	case ActionCache:
		return "Cache"
	case ActionInsert:
		return "CreatedNode"
	case ActionUpdate:
		return "ModifiedNode"
	case ActionErase:
		return "DeletedNode"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// TrackedEntry records one entry's original and current state inside
// an open ApplyStateTable.
type TrackedEntry struct {
	Action   Action
	Original []byte
	Current  []byte
}

// LedgerView is the read/write surface transactions apply against.
// *ledger.State and *ApplyStateTable both implement it.
type LedgerView interface {
	Read(k keylet.Keylet) ([]byte, error)
	Exists(k keylet.Keylet) (bool, error)
	Insert(k keylet.Keylet, data []byte) error
	Update(k keylet.Keylet, data []byte) error
	Erase(k keylet.Keylet) error
}

// ApplyStateTable buffers all writes of a single transaction on top of
// the base ledger. Nothing reaches the base until Apply; a discarded
// table leaves the base untouched. This is the atomic boundary of
// every operation.
type ApplyStateTable struct {
	base    *ledger.State
	tracked map[[32]byte]*TrackedEntry
	order   [][32]byte
}

func NewApplyStateTable(base *ledger.State) *ApplyStateTable {
	return &ApplyStateTable{
		base:    base,
		tracked: make(map[[32]byte]*TrackedEntry),
	}
}

func (t *ApplyStateTable) track(key [32]byte) (*TrackedEntry, error) {
	if te, ok := t.tracked[key]; ok {
		return te, nil
	}
	data, err := t.base.Read(keylet.Keylet{Key: key})
	if err != nil {
		return nil, err
	}
	te := &TrackedEntry{Action: ActionCache, Original: data, Current: data}
	t.tracked[key] = te
	t.order = append(t.order, key)
	return te, nil
}

// Read returns the entry's current bytes, nil if it does not exist.
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	te, err := t.track(k.Key)
	if err != nil {
		return nil, err
	}
	if te.Action == ActionErase {
		return nil, nil
	}
	return te.Current, nil
}

func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	data, err := t.Read(k)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}

func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	te, err := t.track(k.Key)
	if err != nil {
		return err
	}
	if te.Action != ActionErase && te.Current != nil {
		return fmt.Errorf("insert: entry %s already exists", hex.EncodeToString(k.Key[:8]))
	}
	te.Current = data
	if te.Original != nil {
		// erased then re-inserted within the same transaction
		te.Action = ActionUpdate
	} else {
		te.Action = ActionInsert
	}
	return nil
}

func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	te, err := t.track(k.Key)
	if err != nil {
		return err
	}
	te.Current = data
	if te.Original == nil {
		te.Action = ActionInsert
	} else {
		te.Action = ActionUpdate
	}
	return nil
}

func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	te, err := t.track(k.Key)
	if err != nil {
		return err
	}
	if te.Action != ActionErase && te.Current == nil {
		return fmt.Errorf("erase: entry %s does not exist", hex.EncodeToString(k.Key[:8]))
	}
	te.Current = nil
	if te.Original == nil {
		// created and erased within the same transaction, net no-op
		te.Action = ActionCache
	} else {
		te.Action = ActionErase
	}
	return nil
}

// ForEach iterates over the merged view: base entries not shadowed by
// the overlay, then every live overlay entry. If fn returns false,
// iteration stops early.
func (t *ApplyStateTable) ForEach(fn func(key [32]byte, data []byte) bool) error {
	stopped := false
	err := t.base.ForEach(func(key [32]byte, data []byte) bool {
		if _, ok := t.tracked[key]; ok {
			return true
		}
		if !fn(key, data) {
			stopped = true
			return false
		}
		return true
	})
	if err != nil || stopped {
		return err
	}
	for _, key := range t.order {
		te := t.tracked[key]
		if te.Current == nil {
			continue
		}
		if !fn(key, te.Current) {
			break
		}
	}
	return nil
}

// Apply commits every tracked change to the base ledger and returns
// the metadata describing the affected entries.
func (t *ApplyStateTable) Apply() (*Metadata, error) {
	meta := &Metadata{}
	for _, key := range t.order {
		te := t.tracked[key]
		node, err := affectedNode(key, te)
		if err != nil {
			return nil, err
		}
		k := keylet.Keylet{Key: key}
		switch te.Action {
		case ActionCache:
			continue
		case ActionInsert:
			if err := t.base.Insert(k, te.Current); err != nil {
				return nil, err
			}
		case ActionUpdate:
			if err := t.base.Update(k, te.Current); err != nil {
				return nil, err
			}
		case ActionErase:
			if err := t.base.Erase(k); err != nil {
				return nil, err
			}
		}
		meta.AffectedNodes = append(meta.AffectedNodes, *node)
	}
	return meta, nil
}

// Metadata summarizes the state changes a committed transaction made.
type Metadata struct {
	AffectedNodes     []AffectedNode `json:"AffectedNodes"`
	TransactionResult string         `json:"TransactionResult"`
}

// AffectedNode describes one created, modified or deleted entry.
type AffectedNode struct {
	Action     string         `json:"Action"`
	EntryType  string         `json:"EntryType"`
	EntryIndex string         `json:"EntryIndex"`
	Final      map[string]any `json:"FinalFields,omitempty"`
	Previous   map[string]any `json:"PreviousFields,omitempty"`
}

func affectedNode(key [32]byte, te *TrackedEntry) (*AffectedNode, error) {
	node := &AffectedNode{
		Action:     te.Action.String(),
		EntryIndex: hex.EncodeToString(key[:]),
	}
	if te.Current != nil {
		e, err := entry.Decode(te.Current)
		if err != nil {
			return nil, err
		}
		node.EntryType = e.Type().String()
		node.Final, err = entryFields(e)
		if err != nil {
			return nil, err
		}
	}
	if te.Original != nil {
		e, err := entry.Decode(te.Original)
		if err != nil {
			return nil, err
		}
		if node.EntryType == "" {
			node.EntryType = e.Type().String()
		}
		node.Previous, err = entryFields(e)
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}
