package codec

import (
	"encoding/binary"
	"path/filepath"
	"slices"
	"strings"

	"ftledit/types"
)

// Kind is which sort of document a file holds.
type Kind int

const (
	KindUnknown Kind = iota
	KindProfile
	KindSavedGame
	// Both documents have a version 9; the tag alone can't tell them apart.
	KindAmbiguous
)

func (k Kind) String() string {
	switch k {
	case KindProfile:
		return types.DocProfile
	case KindSavedGame:
		return types.DocSavedGame
	case KindAmbiguous:
		return "profile or savedgame"
	}
	return "unknown"
}

// DetectFormat looks at the version tag only.
func DetectFormat(data []byte) (Kind, int32, error) {
	if len(data) < 4 {
		return KindUnknown, 0, &types.TruncatedInputError{Path: "file", Offset: 0, Needed: 4, Available: int64(len(data))}
	}
	version := int32(binary.LittleEndian.Uint32(data))
	_, profileErr := profileFormats.Lookup(version)
	_, savedGameErr := savedGameFormats.Lookup(version)
	switch {
	case profileErr == nil && savedGameErr == nil:
		return KindAmbiguous, version, nil
	case profileErr == nil:
		return KindProfile, version, nil
	case savedGameErr == nil:
		return KindSavedGame, version, nil
	}
	supported := append(profileFormats.Supported(), savedGameFormats.Supported()...)
	slices.Sort(supported)
	return KindUnknown, version, &types.UnsupportedFormatVersionError{Document: "file", Got: version, Supported: slices.Compact(supported)}
}

// KindForFileName goes by the names the game uses: prof.sav, ae_prof.sav, continue.sav.
func KindForFileName(name string) Kind {
	base := strings.ToLower(filepath.Base(name))
	switch {
	case strings.HasSuffix(base, "prof.sav"):
		return KindProfile
	case base == "continue.sav":
		return KindSavedGame
	}
	return KindUnknown
}

// DetectFile combines the two: the tag decides when it can, the file name breaks
// ties, and failing that a version 9 file is tried as a profile, which needs no
// catalog to decode.
func DetectFile(name string, data []byte) (Kind, int32, error) {
	kind, version, err := DetectFormat(data)
	if err != nil || kind != KindAmbiguous {
		return kind, version, err
	}
	if byName := KindForFileName(name); byName != KindUnknown {
		return byName, version, nil
	}
	if _, err := DecodeProfile(data); err == nil {
		return KindProfile, version, nil
	}
	return KindSavedGame, version, nil
}
