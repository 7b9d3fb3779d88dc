package presign

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the registry's canonical binary encoding: CBOR core
// deterministic encoding, so identical payloads always produce identical
// bytes for signing.
var encMode cbor.EncMode

func init() {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("presign: build canonical encoder: %v", err))
	}
	encMode = mode
}

// EncodeMintData returns the canonical encoding of a mint payload.
func EncodeMintData(data MintData) ([]byte, error) {
	return encMode.Marshal(data)
}

// EncodeAttributeData returns the canonical encoding of an attribute payload.
func EncodeAttributeData(data AttributeData) ([]byte, error) {
	return encMode.Marshal(data)
}

// DecodeMintData decodes a canonically encoded mint payload.
func DecodeMintData(encoded []byte) (MintData, error) {
	var data MintData
	if err := cbor.Unmarshal(encoded, &data); err != nil {
		return MintData{}, fmt.Errorf("decode mint data: %w", err)
	}
	return data, nil
}

// DecodeAttributeData decodes a canonically encoded attribute payload.
func DecodeAttributeData(encoded []byte) (AttributeData, error) {
	var data AttributeData
	if err := cbor.Unmarshal(encoded, &data); err != nil {
		return AttributeData{}, fmt.Errorf("decode attribute data: %w", err)
	}
	return data, nil
}
