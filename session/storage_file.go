package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
)

// FileStorage implements Storage, saving session to file.
type FileStorage struct {
	Path string
	mux  sync.Mutex
}

// LoadSession loads session from file.
func (f *FileStorage) LoadSession(_ context.Context) ([]byte, error) {
	if f == nil {
		return nil, errors.New("nil session storage is invalid")
	}
	f.mux.Lock()
	defer f.mux.Unlock()

	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "read")
	}
	return data, nil
}

// StoreSession stores session to file.
//
// Session is written to a temporary file first and moved in place
// with rename, so a crash mid-write never leaves a corrupt session.
func (f *FileStorage) StoreSession(_ context.Context, data []byte) error {
	if f == nil {
		return errors.New("nil session storage is invalid")
	}
	f.mux.Lock()
	defer f.mux.Unlock()

	dir, name := filepath.Split(f.Path)
	tmp, err := os.CreateTemp(dir, name+".tmp*")
	if err != nil {
		return errors.Wrap(err, "create temp")
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if err := tmp.Chmod(0600); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "chmod")
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close")
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return errors.Wrap(err, "rename")
	}
	return nil
}
