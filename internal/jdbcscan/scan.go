// Package jdbcscan walks a source tree and collects jdbc.user / jdbc.URL line
// pairs from properties files.
package jdbcscan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/kamusis/credscan/internal/properties"
	"github.com/kamusis/credscan/internal/record"
	"github.com/kamusis/credscan/internal/textenc"
)

// DefaultDenylist excludes deployment and build tooling copies of the same settings.
var DefaultDenylist = []string{
	"idealx-docker",
	"Deployment_Scripts",
	"build_property_replace",
}

// DefaultExtension selects the files inspected by the scanner.
const DefaultExtension = ".properties"

// FileGroup is the set of pairs found in one file.
type FileGroup struct {
	Path  string
	Pairs []record.JDBCPairRecord
}

// Inconsistency records a file whose user and URL line counts differ.
// Only the first min(Users, URLs) lines were paired.
type Inconsistency struct {
	Path  string
	Users int
	URLs  int
}

// Result holds the scan output in walk order.
type Result struct {
	Files        []FileGroup
	Inconsistent []Inconsistency
	Excluded     []string
	Scanned      int
}

// Records flattens the result, file by file.
func (r *Result) Records() []record.JDBCPairRecord {
	var out []record.JDBCPairRecord
	for _, f := range r.Files {
		out = append(out, f.Pairs...)
	}
	return out
}

// Scanner walks a directory tree for jdbc pairs.
type Scanner struct {
	Denylist  []string
	Extension string
	Encoding  string
	Logger    *zap.Logger
}

// NewScanner returns a Scanner with the default denylist and extension.
func NewScanner(log *zap.Logger) *Scanner {
	return &Scanner{
		Denylist:  append([]string(nil), DefaultDenylist...),
		Extension: DefaultExtension,
		Encoding:  textenc.Latin1,
		Logger:    log,
	}
}

// Excluded reports whether path contains any denylisted substring.
func (s *Scanner) Excluded(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, d := range s.Denylist {
		if d != "" && strings.Contains(slashed, d) {
			return true
		}
	}
	return false
}

func (s *Scanner) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Scan walks root in lexical order. A file that cannot be read aborts the
// scan; the context is checked between entries.
func (s *Scanner) Scan(ctx context.Context, root string) (*Result, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to scan directory: %s is not a directory", root)
	}

	ext := s.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	result := &Result{}
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ext) {
			return nil
		}

		result.Scanned++
		group, err := s.scanFile(path, result)
		if err != nil {
			return err
		}
		if group != nil {
			result.Files = append(result.Files, *group)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}
	return result, nil
}

func (s *Scanner) scanFile(path string, result *Result) (*FileGroup, error) {
	text, err := textenc.ReadFile(path, s.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	lines := properties.ExtractJDBCLines(text)
	if len(lines.Users) == 0 {
		return nil, nil
	}
	if s.Excluded(path) {
		result.Excluded = append(result.Excluded, path)
		s.log().Debug("excluded file", zap.String("path", path))
		return nil, nil
	}

	if !lines.Balanced() {
		result.Inconsistent = append(result.Inconsistent, Inconsistency{
			Path:  path,
			Users: len(lines.Users),
			URLs:  len(lines.URLs),
		})
		s.log().Warn("unequal jdbc.user and jdbc.URL counts, pairing truncated",
			zap.String("path", path),
			zap.Int("users", len(lines.Users)),
			zap.Int("urls", len(lines.URLs)),
		)
	}

	n := lines.PairCount()
	if n == 0 {
		return nil, nil
	}
	group := &FileGroup{Path: path, Pairs: make([]record.JDBCPairRecord, 0, n)}
	for i := 0; i < n; i++ {
		group.Pairs = append(group.Pairs, record.JDBCPairRecord{
			File: path,
			User: lines.Users[i],
			URL:  lines.URLs[i],
		})
	}
	s.log().Debug("collected jdbc pairs", zap.String("path", path), zap.Int("pairs", n))
	return group, nil
}
