// File persistence.
//
// Save never writes the target in place. The payload is first materialised
// in memory, then written (compressed or not) to a sibling ".tmp" file,
// optionally synced, and atomically renamed over the target. A failure at
// any step removes the temporary file and leaves the previous target intact,
// so a reader sees either the old container or the new one, never half of
// one.
//
// Both Open and Save resolve symlinks in the path first and then go through
// os.Root on the real file's directory, so the temporary file is a sibling
// of the file actually replaced and a linked path keeps its link.
package cktext

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Open reads the container at path and merges it into d. On error d is left
// cleared.
func (d *Document) Open(path string) error {
	data, err := readFile(path)
	if err != nil {
		d.Clear()
		d.log.Error("open failed", slog.String("path", path), slog.Any("error", err))
		return err
	}
	return d.Load(data)
}

func readFile(path string) ([]byte, error) {
	dir, name := split(path)
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer root.Close()

	f, err := root.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("open: read: %w", err)
	}
	return data, nil
}

// Save writes d to path, replacing any existing file.
func (d *Document) Save(path string, compress bool) error {
	if err := d.save(path, compress); err != nil {
		d.log.Error("save failed", slog.String("path", path), slog.Any("error", err))
		return err
	}
	return nil
}

func (d *Document) save(path string, compress bool) error {
	dir, name := split(path)

	var payload bytes.Buffer
	if err := d.encode(&payload); err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer root.Close()

	tmpName := name + ".tmp"
	tmp, err := root.Create(tmpName)
	if err != nil {
		return fmt.Errorf("save: create temp: %w", err)
	}
	// Removal after a successful rename fails harmlessly; on every other
	// path it discards the partial file.
	defer root.Remove(tmpName)

	if err := d.writeTemp(tmp, &payload, compress); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save: close temp: %w", err)
	}
	if err := root.Rename(tmpName, name); err != nil {
		return fmt.Errorf("save: rename: %w", err)
	}
	return nil
}

// writeTemp writes the header and payload to the temporary file.
func (d *Document) writeTemp(tmp *os.File, payload *bytes.Buffer, compress bool) error {
	if _, err := tmp.Write(header(compress)); err != nil {
		return fmt.Errorf("save: write header: %w", err)
	}
	if compress {
		if _, err := d.deflate(tmp, payload); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	} else if _, err := payload.WriteTo(tmp); err != nil {
		return fmt.Errorf("save: write payload: %w", err)
	}
	if d.config.SyncWrites {
		if err := tmp.Sync(); err != nil {
			return fmt.Errorf("save: sync: %w", err)
		}
	}
	return nil
}

// split resolves symlinks in path and returns the directory and base name of
// the file it names. A path that does not exist yet is used as given.
func split(path string) (dir, name string) {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	dir, name = filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	return dir, name
}
