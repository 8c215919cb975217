package codec

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"ftledit/types"
)

// Fidelity is the result of a decode/encode round trip on a file.
type Fidelity struct {
	Identical bool

	OriginalHash  [32]byte
	ReencodedHash [32]byte

	OriginalSize  int
	ReencodedSize int

	// -1 when identical.  When one output is a prefix of the other this is the
	// length of the shorter one.
	FirstDifference int64
}

func (f Fidelity) String() string {
	if f.Identical {
		return fmt.Sprintf("identical (%d bytes, blake3 %s)", f.OriginalSize, hex.EncodeToString(f.OriginalHash[:8]))
	}
	return fmt.Sprintf("DIFFERENT: original %d bytes (blake3 %s), re-encoded %d bytes (blake3 %s), first difference at offset %d",
		f.OriginalSize, hex.EncodeToString(f.OriginalHash[:8]),
		f.ReencodedSize, hex.EncodeToString(f.ReencodedHash[:8]),
		f.FirstDifference)
}

func compare(original, reencoded []byte) Fidelity {
	f := Fidelity{
		OriginalHash:    blake3.Sum256(original),
		ReencodedHash:   blake3.Sum256(reencoded),
		OriginalSize:    len(original),
		ReencodedSize:   len(reencoded),
		FirstDifference: -1,
	}
	f.Identical = f.OriginalHash == f.ReencodedHash && f.OriginalSize == f.ReencodedSize
	if f.Identical {
		return f
	}
	n := min(len(original), len(reencoded))
	f.FirstDifference = int64(n)
	for i := range n {
		if original[i] != reencoded[i] {
			f.FirstDifference = int64(i)
			break
		}
	}
	return f
}

// VerifyProfile decodes data, re-encodes it and reports whether the bytes survived.
// A mismatch is not an error; the decoded profile is returned either way.
func VerifyProfile(data []byte) (*types.Profile, Fidelity, error) {
	p, err := DecodeProfile(data)
	if err != nil {
		return nil, Fidelity{}, err
	}
	out, err := EncodeProfile(p)
	if err != nil {
		return p, Fidelity{}, err
	}
	return p, compare(data, out), nil
}

func VerifySavedGame(data []byte, catalog ShipCatalog) (*types.SavedGame, Fidelity, error) {
	g, err := DecodeSavedGame(data, catalog)
	if err != nil {
		return nil, Fidelity{}, err
	}
	out, err := EncodeSavedGame(g, catalog)
	if err != nil {
		return g, Fidelity{}, err
	}
	return g, compare(data, out), nil
}
