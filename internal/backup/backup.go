// SPDX-License-Identifier: MIT

// Package backup writes catalog snapshots to compressed archives and reads
// them back for restore.
package backup

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	filePrefix   = "catalog-"
	fileSuffix   = ".tar.gz"
	stampLayout  = "2006-01-02-150405"
	dataEntry    = "palettes.json"
	metaEntry    = "metadata.json"
	maxEntrySize = 64 << 20
)

// ErrInvalidName is returned for names that are not backup archives in the
// backup directory
var ErrInvalidName = errors.New("invalid backup name")

// Metadata is stored alongside the snapshot in every archive
type Metadata struct {
	Timestamp    time.Time `json:"timestamp"`
	Version      string    `json:"version"`
	Note         string    `json:"note,omitempty"`
	PaletteCount int       `json:"paletteCount"`
	SizeBytes    int       `json:"sizeBytes"`
}

// Info describes one archive on disk
type Info struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Status summarises the backup directory
type Status struct {
	Count     int
	TotalSize int64
	Oldest    time.Time
	Newest    time.Time
}

// Manager handles all backup operations
type Manager struct {
	BackupPath string
	Version    string

	fs  afero.Fs
	now func() time.Time
}

// NewManager creates a backup manager storing archives under backupPath
func NewManager(fs afero.Fs, backupPath string) *Manager {
	return &Manager{
		BackupPath: backupPath,
		Version:    "dev",
		fs:         fs,
		now:        time.Now,
	}
}

// CreateBackup archives data, a catalog export, and returns the archive name
func (m *Manager) CreateBackup(data, note string) (string, error) {
	if err := m.fs.MkdirAll(m.BackupPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	now := m.now().UTC()
	name, err := m.freeName(now)
	if err != nil {
		return "", err
	}

	meta := Metadata{
		Timestamp:    now,
		Version:      m.Version,
		Note:         note,
		PaletteCount: countRecords(data),
		SizeBytes:    len(data),
	}
	metaJSON, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, entry := range []struct {
		name string
		body []byte
	}{
		{dataEntry, []byte(data)},
		{metaEntry, metaJSON},
	} {
		hdr := &tar.Header{
			Name:    entry.name,
			Mode:    0644,
			Size:    int64(len(entry.body)),
			ModTime: now,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return "", fmt.Errorf("failed to write archive header: %w", err)
		}
		if _, err := tw.Write(entry.body); err != nil {
			return "", fmt.Errorf("failed to write archive entry: %w", err)
		}
	}
	if err := tw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish archive: %w", err)
	}
	if err := gz.Close(); err != nil {
		return "", fmt.Errorf("failed to finish archive: %w", err)
	}

	if err := afero.WriteFile(m.fs, filepath.Join(m.BackupPath, name), buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return name, nil
}

// freeName picks catalog-<stamp>.tar.gz, adding a counter if two backups
// land in the same second
func (m *Manager) freeName(t time.Time) (string, error) {
	base := filePrefix + t.Format(stampLayout)
	name := base + fileSuffix
	for i := 2; ; i++ {
		exists, err := afero.Exists(m.fs, filepath.Join(m.BackupPath, name))
		if err != nil {
			return "", fmt.Errorf("failed to check backup path: %w", err)
		}
		if !exists {
			return name, nil
		}
		name = fmt.Sprintf("%s-%d%s", base, i, fileSuffix)
	}
}

func countRecords(data string) int {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return 0
	}
	return len(items)
}

func validName(name string) bool {
	return name == filepath.Base(name) &&
		strings.HasPrefix(name, filePrefix) &&
		strings.HasSuffix(name, fileSuffix)
}

// nameOrder splits an archive name into its timestamp and same-second
// counter
func nameOrder(name string) (string, int) {
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if len(stamp) <= len(stampLayout) {
		return stamp, 1
	}
	n, err := strconv.Atoi(strings.TrimPrefix(stamp[len(stampLayout):], "-"))
	if err != nil {
		return stamp, 1
	}
	return stamp[:len(stampLayout)], n
}

// ListBackups returns the archives in the backup directory, newest first
func (m *Manager) ListBackups() ([]Info, error) {
	entries, err := afero.ReadDir(m.fs, m.BackupPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	backups := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !validName(entry.Name()) {
			continue
		}
		backups = append(backups, Info{
			Name:    entry.Name(),
			Size:    entry.Size(),
			ModTime: entry.ModTime(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		si, ni := nameOrder(backups[i].Name)
		sj, nj := nameOrder(backups[j].Name)
		if si != sj {
			return si > sj
		}
		return ni > nj
	})
	return backups, nil
}

// ReadBackup returns the catalog export and metadata stored in name
func (m *Manager) ReadBackup(name string) (string, Metadata, error) {
	var meta Metadata
	if !validName(name) {
		return "", meta, fmt.Errorf("%w: %s", ErrInvalidName, name)
	}

	f, err := m.fs.Open(filepath.Join(m.BackupPath, name))
	if err != nil {
		return "", meta, fmt.Errorf("failed to open backup: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", meta, fmt.Errorf("failed to read backup: %w", err)
	}
	defer gz.Close()

	var (
		data     []byte
		haveData bool
	)
	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", meta, fmt.Errorf("failed to read backup: %w", err)
		}

		body, err := io.ReadAll(io.LimitReader(tr, maxEntrySize))
		if err != nil {
			return "", meta, fmt.Errorf("failed to read %s: %w", hdr.Name, err)
		}

		switch hdr.Name {
		case dataEntry:
			data = body
			haveData = true
		case metaEntry:
			if err := json.Unmarshal(body, &meta); err != nil {
				return "", meta, fmt.Errorf("failed to decode metadata: %w", err)
			}
		}
	}

	if !haveData {
		return "", meta, fmt.Errorf("backup %s has no %s", name, dataEntry)
	}
	return string(data), meta, nil
}

// Delete removes one archive
func (m *Manager) Delete(name string) error {
	if !validName(name) {
		return fmt.Errorf("%w: %s", ErrInvalidName, name)
	}
	if err := m.fs.Remove(filepath.Join(m.BackupPath, name)); err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	return nil
}

// Prune deletes all but the newest keep archives and returns the names it
// removed. keep <= 0 disables pruning.
func (m *Manager) Prune(keep int) ([]string, error) {
	if keep <= 0 {
		return nil, nil
	}

	backups, err := m.ListBackups()
	if err != nil {
		return nil, err
	}
	if len(backups) <= keep {
		return nil, nil
	}

	var removed []string
	for _, b := range backups[keep:] {
		if err := m.Delete(b.Name); err != nil {
			return removed, err
		}
		removed = append(removed, b.Name)
	}
	return removed, nil
}

// Status summarises the archives currently on disk
func (m *Manager) Status() (Status, error) {
	backups, err := m.ListBackups()
	if err != nil {
		return Status{}, err
	}

	var st Status
	for _, b := range backups {
		st.Count++
		st.TotalSize += b.Size
		if st.Oldest.IsZero() || b.ModTime.Before(st.Oldest) {
			st.Oldest = b.ModTime
		}
		if st.Newest.IsZero() || b.ModTime.After(st.Newest) {
			st.Newest = b.ModTime
		}
	}
	return st, nil
}
