package msgtree

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/therootcompany/xz"
)

const (
	ArchiveExt   = ".arch"
	ArchiveXZExt = ".arch.xz"
)

var xzMagic = []byte("\xfd7zXZ\x00")

// Archive holds the two sections of an archive: the pre-order tree shape and
// the bit message.
type Archive struct {
	Name  string `db:"Name"`
	Shape string `db:"Shape"`
	Bits  string `db:"Bits"`
}

// IsArchivePath reports whether path carries an archive extension.
func IsArchivePath(path string) bool {
	return strings.HasSuffix(path, ArchiveExt) || strings.HasSuffix(path, ArchiveXZExt)
}

// OpenArchive reads an archive file. xz compressed archives are recognised by
// their magic number and decompressed on the fly.
func OpenArchive(path string) (Archive, error) {
	if !IsArchivePath(path) {
		return Archive{}, &ErrFileType{Filename: path}
	}
	file, err := os.Open(path)
	if err != nil {
		return Archive{}, &ErrOpenFile{Filename: path, Err: err}
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	var r io.Reader = buffered
	header, _ := buffered.Peek(len(xzMagic))
	if bytes.Equal(header, xzMagic) {
		if configuration.Verbosity > 1 {
			logger.Info(fmt.Sprintf("Decompressing xz archive %s", path), "archive")
		}
		r, err = xz.NewReader(buffered, xz.DefaultDictMax)
		if err != nil {
			return Archive{}, fmt.Errorf("error opening xz stream in %q: %w", path, err)
		}
	}

	archive, err := ReadArchive(r)
	if err != nil {
		return Archive{}, fmt.Errorf("error reading archive %q: %w", path, err)
	}
	archive.Name = archiveName(path)
	return archive, nil
}

// ReadArchive splits the input into the tree shape and the bit message. The
// first line made only of '0' and '1' is the message; every line before it
// belongs to the shape, joined back with '\n' because a newline may itself be
// a leaf.
func ReadArchive(r io.Reader) (Archive, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	var shape strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		if isBitLine(line) {
			return Archive{Shape: shape.String(), Bits: line}, nil
		}
		if shape.Len() > 0 {
			shape.WriteByte('\n')
		}
		shape.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return Archive{}, err
	}
	return Archive{}, ErrMissingMessage
}

func isBitLine(line string) bool {
	if len(line) == 0 {
		return false
	}
	for i := 0; i < len(line); i++ {
		if line[i] != '0' && line[i] != '1' {
			return false
		}
	}
	return true
}

func archiveName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".xz")
	return strings.TrimSuffix(base, ArchiveExt)
}
