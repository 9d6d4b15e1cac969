package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Beastly713/sss256/pkg/format"
	"github.com/Beastly713/sss256/pkg/gf256"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// shareExt is the extension split gives share files and combine looks for
// when scanning directories.
const shareExt = ".share"

// loadedShare is one opened share file.
type loadedShare struct {
	Path   string
	Header *format.Header // nil for raw shares
	Body   io.Reader
	File   *os.File
}

// shareGroup holds the shares of one split operation.
type shareGroup struct {
	Name   string
	Shares []*loadedShare
}

func shareFileName(original string, index, total int) string {
	ext := filepath.Ext(original)
	nameNoExt := original[:len(original)-len(ext)]
	return fmt.Sprintf("%s_%d_of_%d%s", nameNoExt, index, total, shareExt)
}

// collectPaths expands directories into the share files they contain.
// Explicitly named files are taken whatever their extension.
func collectPaths(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to stat share path")
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read directory")
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), shareExt) {
				continue
			}
			paths = append(paths, filepath.Join(arg, e.Name()))
		}
	}

	if len(paths) == 0 {
		return nil, errors.Errorf("no share files found in %s", strings.Join(args, ", "))
	}
	return paths, nil
}

// openShares opens every path and parses its header if it has one. On
// error, files opened so far are closed.
func openShares(paths []string) ([]*loadedShare, error) {
	shares := make([]*loadedShare, 0, len(paths))
	for _, path := range paths {
		file, err := os.Open(path)
		if err != nil {
			closeShares(shares)
			return nil, errors.Wrapf(err, "failed to open %s", path)
		}

		reader, err := format.NewReader(file)
		if err != nil {
			file.Close()
			closeShares(shares)
			return nil, errors.Wrapf(err, "invalid share %s", path)
		}

		log.Debug().Str("file", path).Bool("armored", reader.Header != nil).Msg("loaded share")
		shares = append(shares, &loadedShare{
			Path:   path,
			Header: reader.Header,
			Body:   reader.Body,
			File:   file,
		})
	}
	return shares, nil
}

func closeShares(shares []*loadedShare) {
	for _, s := range shares {
		if s.File != nil {
			s.File.Close()
		}
	}
}

// groupShares groups armored shares by the split they came from: same
// file, timestamp and split ID. Raw shares carry no such information and
// form a single group of their own.
func groupShares(shares []*loadedShare) []*shareGroup {
	byID := make(map[string]*shareGroup)
	var groups []*shareGroup

	for _, s := range shares {
		id := "raw shares"
		if s.Header != nil {
			id = fmt.Sprintf("%s|%d|%s", s.Header.OriginalFilename, s.Header.Timestamp, s.Header.SplitID)
		}
		g, ok := byID[id]
		if !ok {
			g = &shareGroup{Name: id}
			byID[id] = g
			groups = append(groups, g)
		}
		g.Shares = append(g.Shares, s)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}

// header returns the group's reference header, or nil for raw shares. It
// fails when armored shares in one group disagree on how they were split.
func (g *shareGroup) header() (*format.Header, error) {
	var ref *format.Header
	for _, s := range g.Shares {
		if s.Header == nil {
			continue
		}
		if ref == nil {
			ref = s.Header
			continue
		}
		if !ref.SameSplit(s.Header) {
			return nil, errors.Errorf("%s does not belong to the same split as the other shares of %s", s.Path, ref.OriginalFilename)
		}
	}
	return ref, nil
}

// threshold returns the explicit threshold if set, else the one recorded in
// the header, else 0 (unknown).
func resolveThreshold(explicit int, ref *format.Header) int {
	if explicit > 0 {
		return explicit
	}
	if ref != nil {
		return ref.Threshold
	}
	return 0
}

// groupField picks the field recorded by the shares, falling back to the
// configured one for raw shares.
func groupField(ref *format.Header) (*gf256.Field, error) {
	if ref != nil && ref.Field != "" {
		return gf256.ParseStrategy(ref.Field)
	}
	return configuredField()
}

func (g *shareGroup) readers() []io.Reader {
	out := make([]io.Reader, len(g.Shares))
	for i, s := range g.Shares {
		out[i] = s.Body
	}
	return out
}
