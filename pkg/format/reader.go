package format

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// maxBannerLines bounds the scan for the header marker so garbage input
// fails quickly.
const maxBannerLines = 50

// Reader separates the optional armored header from the share records.
type Reader struct {
	// Header is nil for raw shares.
	Header *Header
	Body   io.Reader
}

// NewReader inspects a share stream. Streams that start with the armored
// banner have their header parsed and validated; anything else is treated
// as a raw share and returned untouched in Body.
func NewReader(r io.Reader) (*Reader, error) {
	// bufio lets us look ahead without losing the body that follows.
	bufReader := bufio.NewReader(r)

	prefix, err := bufReader.Peek(len(magicPrefix))
	if err != nil || string(prefix) != magicPrefix {
		return &Reader{Body: bufReader}, nil
	}

	foundHeader := false
	for i := 0; i < maxBannerLines; i++ {
		line, err := bufReader.ReadString('\n')
		if err != nil {
			return nil, errors.Wrap(err, "failed to read stream while looking for header")
		}
		if strings.TrimSpace(line) == HeaderMarker {
			foundHeader = true
			break
		}
	}
	if !foundHeader {
		return nil, errors.Wrapf(ErrInvalidHeader, "could not find %q marker", HeaderMarker)
	}

	var jsonBuilder bytes.Buffer
	for {
		line, err := bufReader.ReadString('\n')
		if err != nil {
			return nil, errors.Wrap(err, "failed to read stream while reading header json")
		}
		if strings.TrimSpace(line) == BodyMarker {
			break
		}
		jsonBuilder.WriteString(line)
	}

	header := &Header{}
	if err := json.Unmarshal(jsonBuilder.Bytes(), header); err != nil {
		return nil, errors.Wrapf(ErrInvalidHeader, "failed to parse header json: %v", err)
	}
	if err := header.Validate(); err != nil {
		return nil, err
	}

	// Every record starts with the identifier; an empty body is an empty
	// secret.
	first, err := bufReader.Peek(1)
	if err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "failed to read share body")
	}
	if len(first) == 1 && first[0] != header.Identifier {
		return nil, errors.Wrapf(ErrInvalidHeader, "header identifier %d does not match body identifier %d", header.Identifier, first[0])
	}

	return &Reader{
		Header: header,
		// Buffered body bytes are drained before reading further from r.
		Body: bufReader,
	}, nil
}
