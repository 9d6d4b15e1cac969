package format

import (
	"github.com/Beastly713/sss256/pkg/shamir"
	"github.com/pkg/errors"
)

// Standard Markers used to delineate sections in the armored format
const (
	// MagicHeader is the user-friendly introduction found at the top of an
	// armored share.
	MagicHeader = `# THIS FILE IS A SECRET SHARE.
# IT IS ONE OF %d SHARES THAT EACH CONTAIN PART OF AN ORIGINAL FILE.
# THIS IS SHARE NUMBER %d.
# IN ORDER TO RECOVER THE ORIGINAL FILE YOU MUST FIND %d MORE SHARE(S)
# AND COMBINE THEM WITH sss256.
`
	// magicPrefix is how NewReader tells armored shares from raw ones.
	magicPrefix = "# THIS FILE IS A SECRET SHARE."

	// HeaderMarker indicates the start of the JSON metadata
	HeaderMarker = "-- HEADER --"

	// BodyMarker indicates the start of the raw share records
	BodyMarker = "-- BODY --"
)

// ErrInvalidHeader is returned for armored shares with unusable metadata.
var ErrInvalidHeader = errors.New("format: invalid share header")

// Header contains the metadata needed to combine shares without knowing
// how they were split.
type Header struct {
	// OriginalFilename is the name of the file before splitting
	OriginalFilename string `json:"originalFilename"`

	// Timestamp is the unix timestamp when the split occurred.
	// Used to ensure we aren't mixing shares from different sessions.
	Timestamp int64 `json:"timestamp"`

	// SplitID is random per split operation, so two splits of one file in
	// the same second still tell apart.
	SplitID string `json:"splitId,omitempty"`

	// Index is the share number (1-based). It is unrelated to Identifier.
	Index int `json:"index"`

	// Total is the total number of shares created
	Total int `json:"total"`

	// Threshold is the number of shares required to recover the file
	Threshold int `json:"threshold"`

	// Identifier is the X value repeated in every record of the body.
	Identifier byte `json:"identifier"`

	// Field names the GF(256) representation, see gf256.ParseStrategy.
	Field string `json:"field"`
}

// Validate checks if the header contains sane values.
func (h *Header) Validate() error {
	if h.Total < 1 || h.Total > shamir.MaxShares {
		return errors.Wrapf(ErrInvalidHeader, "invalid total %d", h.Total)
	}
	if h.Index < 1 || h.Index > h.Total {
		return errors.Wrapf(ErrInvalidHeader, "invalid index %d for total %d", h.Index, h.Total)
	}
	if h.Threshold < 1 || h.Threshold > h.Total {
		return errors.Wrapf(ErrInvalidHeader, "invalid threshold %d for total %d", h.Threshold, h.Total)
	}
	if h.Identifier == 0 {
		return errors.Wrap(ErrInvalidHeader, "identifier 0 is reserved for the secret")
	}
	if h.OriginalFilename == "" {
		return errors.Wrap(ErrInvalidHeader, "missing original filename")
	}
	return nil
}

// SameSplit reports whether two headers come from one split operation.
func (h *Header) SameSplit(o *Header) bool {
	return h.SplitID == o.SplitID &&
		h.OriginalFilename == o.OriginalFilename &&
		h.Timestamp == o.Timestamp &&
		h.Total == o.Total &&
		h.Threshold == o.Threshold &&
		h.Field == o.Field
}
