package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"
)

// FileStore persists credentials for every region to one JSON file.
// Writes go to a temporary file that is renamed into place, and the file is
// only readable by its owner.
type FileStore struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
}

// NewFileStore creates a FileStore at path on fs. The file is created on the
// first Save.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the location of the token file.
func (f *FileStore) Path() string {
	return f.path
}

type fileSnapshot struct {
	Tokens map[string]*Credentials `json:"tokens"`
}

func (f *FileStore) Load(region string) (*Credentials, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap, err := f.read()
	if err != nil {
		return nil, err
	}
	c, ok := snap.Tokens[region]
	if !ok || c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (f *FileStore) Save(region string, creds *Credentials) error {
	if creds == nil {
		return errors.New("tokenstore: nil credentials")
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	snap, err := f.read()
	if err != nil {
		return err
	}
	snap.Tokens[region] = creds.Clone()
	return f.write(snap)
}

func (f *FileStore) read() (*fileSnapshot, error) {
	snap := &fileSnapshot{Tokens: map[string]*Credentials{}}
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return snap, nil
		}
		return nil, fmt.Errorf("read token file: %w", err)
	}
	if len(data) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode token file %s: %w", f.path, err)
	}
	if snap.Tokens == nil {
		snap.Tokens = map[string]*Credentials{}
	}
	return snap, nil
}

func (f *FileStore) write(snap *fileSnapshot) error {
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}
