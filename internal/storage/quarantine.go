package storage

import (
	"aurora/internal/providers"
	"aurora/internal/storage/interfaces"
	"aurora/internal/structures"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const quarantineSuffix = ".corrupt.zst"

// Quarantine keeps a compressed copy of every store file that failed to
// parse before the store resets it. An empty dir disables it.
type Quarantine struct {
	dir        string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	now        func() time.Time
}

func NewQuarantine(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) *Quarantine {
	dir := conf.Storage.QuarantineDir
	if dir != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(conf.Storage.DataDir, dir)
	}
	return &Quarantine{
		dir:        dir,
		compressor: compressor,
		logger:     logger,
		now:        time.Now,
	}
}

// Preserve writes data to <dir>/<name>.<unix-nanos>.corrupt.zst and returns
// the path. It returns "" when the quarantine is disabled or data is empty.
func (q *Quarantine) Preserve(name string, data []byte) (string, error) {
	if q.dir == "" || len(data) == 0 {
		return "", nil
	}

	compressed, err := q.compressor.Compress(data)
	if err != nil {
		return "", fmt.Errorf("compress %s: %w", name, err)
	}

	path := filepath.Join(q.dir, fmt.Sprintf("%s.%d%s", filepath.Base(name), q.now().UnixNano(), quarantineSuffix))
	if err := writeFileAtomic(path, compressed, 0600); err != nil {
		return "", err
	}
	q.logger.Warnf(providers.TypeApp, "Quarantined corrupt %s to %s (%d bytes)", name, path, len(data))
	return path, nil
}

// Read returns the original bytes of a quarantined file.
func (q *Quarantine) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return q.compressor.Decompress(data)
}

// List returns quarantined files for name, oldest first.
func (q *Quarantine) List(name string) ([]string, error) {
	if q.dir == "" {
		return nil, nil
	}
	files, err := filepath.Glob(filepath.Join(q.dir, filepath.Base(name)+".*"+quarantineSuffix))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (q *Quarantine) Close() {
	q.compressor.Close()
}

func isBlank(data []byte) bool {
	return strings.TrimSpace(string(data)) == ""
}
