package envelope

import "github.com/fxamacker/cbor/v2"

// DecodeMetadata decodes an envelope's raw CBOR metadata field into a
// generic value tree, the same decode target the b-open-io-go-sdk
// examples use for arbitrary inscription metadata.
func DecodeMetadata(raw []byte) (any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var v any
	if err := cbor.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
