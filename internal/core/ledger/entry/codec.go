package entry

import (
	"encoding/binary"
	"fmt"

	"github.com/ugorji/go/codec"
)

// cborHandle is shared by all entry encoding. Canonical mode keeps the
// serialized form deterministic so stored entries are byte-comparable.
var cborHandle = func() *codec.CborHandle {
	h := new(codec.CborHandle)
	h.Canonical = true
	return h
}()

// Encode serializes an entry as a 2-byte big-endian type prefix
// followed by a canonical CBOR body.
func Encode(e Entry) ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s entry: %w", e.Type(), err)
	}

	var body []byte
	enc := codec.NewEncoderBytes(&body, cborHandle)
	if err := enc.Encode(e); err != nil {
		return nil, fmt.Errorf("encode %s entry: %w", e.Type(), err)
	}

	out := make([]byte, 2, 2+len(body))
	binary.BigEndian.PutUint16(out, uint16(e.Type()))
	return append(out, body...), nil
}

// Decode reads a serialized entry back into its concrete type.
func Decode(data []byte) (Entry, error) {
	if len(data) < 2 {
		return nil, fmt.Errorf("entry data too short: %d bytes", len(data))
	}
	typ := Type(binary.BigEndian.Uint16(data[:2]))

	var e Entry
	switch typ {
	case TypeBalance:
		e = &Balance{}
	case TypeAllowance:
		e = &Allowance{}
	case TypeSubjectRoot:
		e = &SubjectRoot{}
	case TypePresaleConfig:
		e = &PresaleConfig{}
	case TypeWhitelist:
		e = &Whitelist{}
	case TypeContribution:
		e = &Contribution{}
	case TypeContributionLog:
		e = &ContributionLog{}
	case TypeProceeds:
		e = &Proceeds{}
	default:
		return nil, fmt.Errorf("unknown entry type %#x", uint16(typ))
	}

	dec := codec.NewDecoderBytes(data[2:], cborHandle)
	if err := dec.Decode(e); err != nil {
		return nil, fmt.Errorf("decode %s entry: %w", typ, err)
	}
	return e, nil
}
