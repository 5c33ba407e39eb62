// Package helpertest contains test fixtures shared between packages.
package helpertest

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
)

// TmpFolder is a temporary directory that is cleaned up after the test.
type TmpFolder struct {
	Path  string
	Error error
}

// TmpFile is a file inside a TmpFolder.
type TmpFile struct {
	Path   string
	Error  error
	Folder *TmpFolder
}

// NewTmpFolder creates a new temporary directory with the given prefix.
func NewTmpFolder(prefix string) *TmpFolder {
	if len(prefix) == 0 {
		prefix = "anchord"
	}

	path, err := os.MkdirTemp("", prefix)

	return &TmpFolder{
		Path:  path,
		Error: err,
	}
}

// Clean removes the directory and everything in it.
func (tf *TmpFolder) Clean() error {
	if len(tf.Path) > 0 {
		return os.RemoveAll(tf.Path)
	}

	return nil
}

// CreateSubFolder creates a named directory inside the folder.
func (tf *TmpFolder) CreateSubFolder(name string) *TmpFolder {
	path := filepath.Join(tf.Path, name)
	err := os.Mkdir(path, fs.ModePerm)

	return &TmpFolder{
		Path:  path,
		Error: err,
	}
}

// CreateStringFile creates a named file containing the given lines.
func (tf *TmpFolder) CreateStringFile(name string, lines ...string) *TmpFile {
	f, err := os.Create(filepath.Join(tf.Path, name))
	if err != nil {
		return &TmpFile{Error: err, Folder: tf}
	}

	w := bufio.NewWriter(f)

	for i, l := range lines {
		if i > 0 {
			_, _ = w.WriteString("\n")
		}

		if _, err = w.WriteString(l); err != nil {
			break
		}
	}

	if flushErr := w.Flush(); err == nil {
		err = flushErr
	}

	if closeErr := f.Close(); err == nil {
		err = closeErr
	}

	return &TmpFile{
		Path:   f.Name(),
		Error:  err,
		Folder: tf,
	}
}

// JoinPath returns the path of a named entry inside the folder.
func (tf *TmpFolder) JoinPath(name string) string {
	return filepath.Join(tf.Path, name)
}
