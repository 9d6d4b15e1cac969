package format

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHeader() *Header {
	return &Header{
		OriginalFilename: "secret_plans.txt",
		Timestamp:        1620000000,
		SplitID:          "7b2c9a1e-3f4d-4e6a-9b8c-0d1e2f3a4b5c",
		Index:            1,
		Total:            5,
		Threshold:        3,
		Identifier:       0x9c,
		Field:            "0x11d",
	}
}

func TestRoundTrip_Armored(t *testing.T) {
	originalHeader := testHeader()
	body := []byte{0x9c, 0x00, 0x9c, 0x0a, 0x9c, '\n', 0x9c, 0xff}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, originalHeader)
	require.NoError(t, err)
	_, err = w.Write(body)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "YOU MUST FIND 2 MORE SHARE(S)")

	r, err := NewReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, originalHeader, r.Header)

	readBody, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, body, readBody)
}

func TestRawShare(t *testing.T) {
	body := []byte{0x23, 0x20, 0x23, 0x54}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, nil)
	require.NoError(t, err)
	_, err = w.Write(body)
	require.NoError(t, err)

	assert.Equal(t, body, buf.Bytes())

	r, err := NewReader(&buf)
	require.NoError(t, err)
	assert.Nil(t, r.Header)

	readBody, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, body, readBody)
}

func TestShortRawShare(t *testing.T) {
	r, err := NewReader(bytes.NewReader([]byte{1, 2}))
	require.NoError(t, err)
	assert.Nil(t, r.Header)

	readBody, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, readBody)
}

func TestWriterRejectsInvalidHeader(t *testing.T) {
	h := testHeader()
	h.Identifier = 0

	var buf bytes.Buffer
	_, err := NewWriter(&buf, h)
	assert.True(t, errors.Is(err, ErrInvalidHeader))
	assert.Zero(t, buf.Len())
}

func TestHeaderValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(h *Header)
	}{
		{"index zero", func(h *Header) { h.Index = 0 }},
		{"index above total", func(h *Header) { h.Index = 6 }},
		{"threshold zero", func(h *Header) { h.Threshold = 0 }},
		{"threshold above total", func(h *Header) { h.Threshold = 6 }},
		{"total too large", func(h *Header) { h.Total = 256 }},
		{"no filename", func(h *Header) { h.OriginalFilename = "" }},
	}

	require.NoError(t, testHeader().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHeader()
			tt.mutate(h)
			assert.True(t, errors.Is(h.Validate(), ErrInvalidHeader))
		})
	}
}

func TestSameSplit(t *testing.T) {
	a, b := testHeader(), testHeader()
	b.Index, b.Identifier = 2, 0x11
	assert.True(t, a.SameSplit(b))

	b.Timestamp++
	assert.False(t, a.SameSplit(b))

	// Same file, same second, different split.
	c := testHeader()
	c.SplitID = "0f9e8d7c-6b5a-4c3d-8e2f-1a0b9c8d7e6f"
	assert.False(t, a.SameSplit(c))
}

func TestIdentifierMismatch(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, testHeader())
	require.NoError(t, err)
	// Body of a different share.
	_, err = w.Write([]byte{0x11, 0x42, 0x11, 0x43})
	require.NoError(t, err)

	_, err = NewReader(&buf)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidHeader))
	assert.Contains(t, err.Error(), "does not match")
}

func TestArmoredEmptyBody(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewWriter(&buf, testHeader())
	require.NoError(t, err)

	r, err := NewReader(&buf)
	require.NoError(t, err)
	require.NotNil(t, r.Header)

	readBody, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	assert.Empty(t, readBody)
}

func TestCorruptFile(t *testing.T) {
	// A file that looks right but has broken JSON
	corruptData := `# THIS FILE IS A SECRET SHARE.
-- HEADER --
{ "broken_json": "missing_bracket"
-- BODY --
payload`

	_, err := NewReader(strings.NewReader(corruptData))
	assert.True(t, errors.Is(err, ErrInvalidHeader))
}

func TestMissingHeaderMarker(t *testing.T) {
	data := "# THIS FILE IS A SECRET SHARE.\n" + strings.Repeat("#\n", maxBannerLines+1)

	_, err := NewReader(strings.NewReader(data))
	assert.True(t, errors.Is(err, ErrInvalidHeader))
}
