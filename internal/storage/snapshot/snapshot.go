// Package snapshot serializes the full ledger state to a single
// compressed file and restores it. Snapshots let a standalone node
// carry its books across restarts without replaying history.
package snapshot

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/pierrec/lz4"
	"github.com/ugorji/go/codec"

	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger"
	"github.com/Manifold-MEV/friendtech-presale/internal/core/ledger/keylet"
)

// magic identifies a snapshot file; the version byte follows it.
var magic = []byte("FTPSNAP")

const version = 1

// item is one state entry inside the snapshot payload.
type item struct {
	Key  [32]byte
	Data []byte
}

// payload is the CBOR document compressed into the file body.
type payload struct {
	Items []item
}

var cborHandle = func() *codec.CborHandle {
	h := &codec.CborHandle{}
	h.Canonical = true
	return h
}()

// Write dumps every state entry to path. The payload is canonical CBOR
// compressed with lz4.
func Write(state *ledger.State, path string) error {
	var p payload
	err := state.ForEach(func(key [32]byte, data []byte) bool {
		copied := make([]byte, len(data))
		copy(copied, data)
		p.Items = append(p.Items, item{Key: key, Data: copied})
		return true
	})
	if err != nil {
		return fmt.Errorf("walk state: %w", err)
	}

	var raw []byte
	if err := codec.NewEncoderBytes(&raw, cborHandle).Encode(&p); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(raw)))
	n, err := lz4.CompressBlock(raw, compressed, nil)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}
	body := compressed[:n]
	if n == 0 {
		// Incompressible payload is stored as-is; size zero marks it.
		body = raw
	}

	header := make([]byte, 0, len(magic)+1+8)
	header = append(header, magic...)
	header = append(header, version)
	header = binary.BigEndian.AppendUint64(header, uint64(len(raw)))
	if n == 0 {
		header[len(magic)] |= 0x80
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if _, err := f.Write(header); err == nil {
		_, err = f.Write(body)
	}
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close snapshot: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load restores every entry in the snapshot at path into state.
// Entries already present are overwritten.
func Load(state *ledger.State, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if len(data) < len(magic)+1+8 || string(data[:len(magic)]) != string(magic) {
		return fmt.Errorf("not a snapshot file: %s", path)
	}
	verByte := data[len(magic)]
	uncompressed := verByte&0x80 != 0
	if verByte&0x7f != version {
		return fmt.Errorf("unsupported snapshot version %d", verByte&0x7f)
	}
	rawSize := binary.BigEndian.Uint64(data[len(magic)+1 : len(magic)+9])
	body := data[len(magic)+9:]

	raw := body
	if !uncompressed {
		raw = make([]byte, rawSize)
		if _, err := lz4.UncompressBlock(body, raw); err != nil {
			return fmt.Errorf("decompress snapshot: %w", err)
		}
	}

	var p payload
	if err := codec.NewDecoderBytes(raw, cborHandle).Decode(&p); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	for _, it := range p.Items {
		if err := state.Update(keylet.Keylet{Key: it.Key}, it.Data); err != nil {
			return fmt.Errorf("restore entry: %w", err)
		}
	}
	return nil
}
