package emit

import (
	"fmt"
	"os"
	"path/filepath"
)

// Sink opens one Context per named artifact.
type Sink interface {
	Artifact(name string, fn func(Context) error) error
}

// GeneratedFile is an artifact captured in memory.
type GeneratedFile struct {
	// Name is the file name (e.g., "types.ts")
	Name string
	// Content is the generated source
	Content []byte
}

// MemorySink collects artifacts in memory, in the order they were emitted.
type MemorySink struct {
	Files []GeneratedFile
}

// Artifact implements Sink.
func (m *MemorySink) Artifact(name string, fn func(Context) error) error {
	var b Buffer
	if err := fn(&b); err != nil {
		return err
	}
	m.Files = append(m.Files, GeneratedFile{Name: name, Content: b.Bytes()})
	return nil
}

// DirSink writes each artifact to a file of the same name in Dir. The
// directory is created if it does not exist.
type DirSink struct {
	Dir string
}

// Artifact implements Sink.
func (d DirSink) Artifact(name string, fn func(Context) error) error {
	if filepath.Base(name) != name {
		return fmt.Errorf("emit: invalid artifact name %q: must not contain path separators", name)
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("emit: creating output directory: %w", err)
	}
	path := filepath.Join(d.Dir, name)
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("emit: refusing to write to symlink: %s", path)
	}
	return WithFile(path, fn)
}

var (
	_ Sink = (*MemorySink)(nil)
	_ Sink = DirSink{}
)
