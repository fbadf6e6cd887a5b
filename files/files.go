// Package files provides small file read/write helpers over an afero
// filesystem, with status-coded errors. Passing afero.NewOsFs() gives real
// disk I/O; tests use afero.NewMemMapFs().
package files

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"

	"github.com/basekit-go/basekit/status"
)

// Suffix of the temporary file WriteImportantFile stages data through.
const tempFileSuffix = "._tmp_"

// ReadFile reads the whole file. Missing files report status.CodeNotFound;
// other failures report status.CodeIO.
func ReadFile(fsys afero.Fs, name string) ([]byte, error) {
	data, err := afero.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, status.Wrap(status.CodeNotFound, err, "can't open file "+name)
		}
		return nil, status.Wrap(status.CodeIO, err, "can't read file "+name)
	}
	return data, nil
}

// WriteFile writes data to the named file, creating or truncating it.
func WriteFile(fsys afero.Fs, name string, data []byte) error {
	if err := afero.WriteFile(fsys, name, data, 0o644); err != nil {
		return status.Wrap(status.CodeIO, err, "can't write file "+name)
	}
	return nil
}

// WriteImportantFile writes data through a temporary sibling file and renames
// it over name, so a reader never observes the destination half-written. The
// temporary file is removed on failure.
func WriteImportantFile(fsys afero.Fs, name string, data []byte) error {
	tempName := name + tempFileSuffix
	if err := WriteFile(fsys, tempName, data); err != nil {
		return err
	}
	if err := fsys.Rename(tempName, name); err != nil {
		_ = fsys.Remove(tempName)
		return status.Wrap(status.CodeIO, err, "can't rename temp file "+tempName)
	}
	return nil
}
