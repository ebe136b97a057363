package statestore

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/akabei/pkg/errors"
	"github.com/arthur-debert/akabei/pkg/logging"
	"github.com/arthur-debert/akabei/pkg/types"
)

const (
	stateDirPerm  = 0755
	stateFilePerm = 0644
	tempSuffix    = ".tmp"
)

// Store loads and saves the state snapshot at a fixed path.
type Store struct {
	fs   types.FS
	path string
}

// New returns a store for the snapshot at path.
func New(fs types.FS, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file yields an empty state.
func (s *Store) Load() (types.State, error) {
	logger := logging.GetLogger("statestore")

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", s.path).Msg("No state file, starting empty")
			return types.NewState(), nil
		}
		return types.State{}, errors.Wrapf(err, errors.ErrIoFailure, "cannot read state file %s", s.path).
			WithDetail("path", s.path)
	}

	var state types.State
	if len(bytes.TrimSpace(data)) == 0 {
		return types.NewState(), nil
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return types.State{}, errors.Wrapf(err, errors.ErrStateCorrupt, "cannot parse state file %s", s.path).
			WithDetail("path", s.path)
	}
	for i := range state.Packages {
		if state.Packages[i].Files == nil {
			state.Packages[i].Files = make(map[string]types.FileRecord)
		}
	}
	state.Sort()

	if err := state.Validate(); err != nil {
		return types.State{}, errors.Wrapf(err, errors.ErrStateCorrupt, "state file %s is inconsistent", s.path).
			WithDetail("path", s.path)
	}

	logger.Debug().
		Str("path", s.path).
		Int("packages", len(state.Packages)).
		Int("files", state.FileCount()).
		Msg("Loaded state")
	return state, nil
}

// Save writes the snapshot atomically. Content bytes are never persisted.
func (s *Store) Save(state types.State) error {
	persisted := state.WithoutContent()
	persisted.Sort()

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "cannot encode state")
	}
	data = append(data, '\n')

	if err := s.fs.MkdirAll(filepath.Dir(s.path), stateDirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrIoFailure, "cannot create state directory for %s", s.path)
	}

	tmp := s.path + tempSuffix
	if err := s.fs.WriteFile(tmp, data, stateFilePerm); err != nil {
		return errors.Wrapf(err, errors.ErrIoFailure, "cannot write %s", tmp)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrIoFailure, "cannot replace state file %s", s.path)
	}

	logger := logging.GetLogger("statestore")
	logger.Debug().
		Str("path", s.path).
		Int("packages", len(persisted.Packages)).
		Msg("Saved state")
	return nil
}
