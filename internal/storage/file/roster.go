// Package file persists the roster as a single JSON or YAML snapshot that is
// rewritten in full after every command.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/combat/internal/game/combat"
)

// Format names a snapshot encoding.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	// ErrRosterRead wraps any failure to read or decode a snapshot.
	ErrRosterRead = errors.New("reading roster")
	// ErrRosterWrite wraps any failure to encode or write a snapshot.
	ErrRosterWrite = errors.New("writing roster")
)

// snapshot is the persisted shape: characters keyed by name at the top level.
type snapshot map[string]*combat.Character

// Store reads and writes one roster file.
type Store struct {
	path   string
	format Format
	logger *zap.Logger
}

// NewStore returns a Store for path. FormatAuto picks YAML for .yaml/.yml
// files and JSON otherwise.
//
// Precondition: path must be non-empty; logger must be non-nil.
func NewStore(path string, format Format, logger *zap.Logger) *Store {
	if format == FormatAuto || format == "" {
		format = formatFor(path)
	}
	return &Store{path: path, format: format, logger: logger}
}

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string { return s.path }

// Format returns the resolved encoding.
func (s *Store) Format() Format { return s.format }

// Read loads the roster strictly.
//
// Postcondition: Returns the decoded roster or an error wrapping ErrRosterRead.
func (s *Store) Read() (*combat.Roster, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRosterRead, s.path, err)
	}
	r, err := Decode(data, s.format)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRosterRead, s.path, err)
	}
	return r, nil
}

// Load reads the roster, falling back to an empty one when the file is
// missing or cannot be decoded so the tool works on first run. The failure is
// logged, not returned. A corrupt file is replaced by the next Save.
//
// Postcondition: Returns a non-nil roster.
func (s *Store) Load() *combat.Roster {
	r, err := s.Read()
	if err != nil {
		s.logger.Warn("roster could not be read, starting with an empty roster",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return combat.NewRoster()
	}
	s.logger.Info("using roster data from file",
		zap.String("path", s.path),
		zap.Int("characters", r.Len()),
	)
	return r
}

// Save overwrites the file with the full roster.
//
// Postcondition: Returns nil or an error wrapping ErrRosterWrite; on error the
// previous file contents may or may not remain, depending on where the write failed.
func (s *Store) Save(r *combat.Roster) error {
	data, err := Encode(r, s.format)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrRosterWrite, s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w %s: %w", ErrRosterWrite, s.path, err)
	}
	s.logger.Info("saved roster",
		zap.String("path", s.path),
		zap.Int("characters", r.Len()),
	)
	return nil
}

// Encode serializes r in the given format.
//
// Precondition: format is FormatJSON or FormatYAML.
func Encode(r *combat.Roster, format Format) ([]byte, error) {
	snap := snapshot(r.Characters())
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(snap)
	default:
		return nil, fmt.Errorf("unsupported roster format %q", format)
	}
}

// Decode parses a snapshot. Missing fields take their zero values and unknown
// fields are ignored. Empty input is an empty roster.
//
// Precondition: format is FormatJSON or FormatYAML.
func Decode(data []byte, format Format) (*combat.Roster, error) {
	snap := snapshot{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return combat.NewRoster(), nil
	}
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &snap)
	case FormatYAML:
		err = yaml.Unmarshal(data, &snap)
	default:
		err = fmt.Errorf("unsupported roster format %q", format)
	}
	if err != nil {
		return nil, err
	}
	return combat.NewRosterFrom(snap), nil
}
