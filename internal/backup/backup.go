// Package backup manages timestamped snapshots of the habit state file.
// Each backup is a directory under the data dir holding a copy of
// state.json plus a manifest describing when it was taken and what it
// contains.
package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"streaks/internal/fsutil"
	"streaks/internal/store"
)

const (
	ManifestVersion = "1.0"
	ManifestFile    = "manifest.json"
	BackupsDir      = "backups"
)

// Manager handles backup and restore operations over the data directory.
type Manager struct {
	dataDir    string // e.g. ~/.streaks
	backupDir  string // e.g. ~/.streaks/backups
	appVersion string
}

// Manifest describes one backup.
type Manifest struct {
	Version    string         `json:"version"`
	CreatedAt  time.Time      `json:"created_at"`
	AppVersion string         `json:"app_version"`
	Files      []string       `json:"files"`
	Stats      map[string]int `json:"stats"`
}

// BackupInfo summarizes an on-disk backup.
type BackupInfo struct {
	Name      string         // directory name (2026-08-26_143022_123)
	Path      string         // full path to the backup directory
	CreatedAt time.Time      // when the backup was created
	Stats     map[string]int // habits, days, completions
}

// NewManager creates a backup manager rooted at dataDir.
func NewManager(dataDir, appVersion string) *Manager {
	return &Manager{
		dataDir:    dataDir,
		backupDir:  filepath.Join(dataDir, BackupsDir),
		appVersion: appVersion,
	}
}

// Create snapshots the current state file into a new timestamped backup
// directory and returns the backup name.
func (m *Manager) Create() (string, error) {
	if err := os.MkdirAll(m.backupDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	// Millisecond suffix keeps rapid successive backups distinct.
	now := time.Now()
	name := fmt.Sprintf("%s_%03d", now.Format("2006-01-02_150405"), now.Nanosecond()/1e6)
	backupPath := filepath.Join(m.backupDir, name)

	if err := os.MkdirAll(backupPath, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	var copiedFiles []string
	stats := make(map[string]int)

	srcPath := filepath.Join(m.dataDir, store.StateFile)
	if _, err := os.Stat(srcPath); err == nil {
		dstPath := filepath.Join(backupPath, store.StateFile)
		if err := copyFileAtomic(srcPath, dstPath); err != nil {
			_ = os.RemoveAll(backupPath)
			return "", fmt.Errorf("failed to copy %s: %w", store.StateFile, err)
		}
		copiedFiles = append(copiedFiles, store.StateFile)

		if s, err := stateStats(srcPath); err == nil {
			stats = s
		}
	}

	manifest := Manifest{
		Version:    ManifestVersion,
		CreatedAt:  now,
		AppVersion: m.appVersion,
		Files:      copiedFiles,
		Stats:      stats,
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	if err := writeJSON(manifestPath, manifest); err != nil {
		_ = os.RemoveAll(backupPath)
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}

	return name, nil
}

// List returns all available backups, newest first.
func (m *Manager) List() ([]BackupInfo, error) {
	if _, err := os.Stat(m.backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		backupPath := filepath.Join(m.backupDir, entry.Name())
		manifestPath := filepath.Join(backupPath, ManifestFile)

		var manifest Manifest
		if err := readJSON(manifestPath, &manifest); err != nil {
			// No manifest; fall back to the timestamp in the name.
			createdAt, parseErr := parseBackupName(entry.Name())
			if parseErr != nil {
				continue
			}
			manifest.CreatedAt = createdAt
			manifest.Stats = make(map[string]int)
		}

		backups = append(backups, BackupInfo{
			Name:      entry.Name(),
			Path:      backupPath,
			CreatedAt: manifest.CreatedAt,
			Stats:     manifest.Stats,
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Restore replaces the current state file with the one from a named
// backup. A safety backup of the current state is taken first.
func (m *Manager) Restore(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	var manifest Manifest
	if err := readJSON(manifestPath, &manifest); err != nil {
		manifest.Files = []string{store.StateFile}
	}

	safetyName, err := m.Create()
	if err != nil {
		return fmt.Errorf("failed to create safety backup: %w", err)
	}

	for _, filename := range manifest.Files {
		srcPath := filepath.Join(backupPath, filename)
		dstPath := filepath.Join(m.dataDir, filename)

		if _, err := os.Stat(srcPath); os.IsNotExist(err) {
			continue
		}

		if err := copyFileAtomic(srcPath, dstPath); err != nil {
			return fmt.Errorf("failed to restore %s (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	for _, filename := range manifest.Files {
		dstPath := filepath.Join(m.dataDir, filename)
		if err := validateJSON(dstPath); err != nil {
			return fmt.Errorf("restored file %s is invalid (safety backup: %s): %w", filename, safetyName, err)
		}
	}

	return nil
}

// RestoreLatest restores from the most recent backup.
func (m *Manager) RestoreLatest() error {
	backups, err := m.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups available")
	}

	return m.Restore(backups[0].Name)
}

// Delete removes a specific backup.
func (m *Manager) Delete(name string) error {
	if err := validateBackupName(name); err != nil {
		return err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", name)
	}

	return os.RemoveAll(backupPath)
}

// Prune removes old backups, keeping only the keepCount most recent.
func (m *Manager) Prune(keepCount int) (int, error) {
	if keepCount < 0 {
		return 0, fmt.Errorf("keepCount must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return 0, err
	}

	if len(backups) <= keepCount {
		return 0, nil
	}

	deleted := 0
	for _, backup := range backups[keepCount:] {
		if err := m.Delete(backup.Name); err != nil {
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}

// GetBackup returns information about a specific backup.
func (m *Manager) GetBackup(name string) (*BackupInfo, error) {
	if err := validateBackupName(name); err != nil {
		return nil, err
	}

	backupPath := filepath.Join(m.backupDir, name)
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("backup not found: %s", name)
	}

	manifestPath := filepath.Join(backupPath, ManifestFile)
	var manifest Manifest
	if err := readJSON(manifestPath, &manifest); err != nil {
		createdAt, parseErr := parseBackupName(name)
		if parseErr != nil {
			return nil, fmt.Errorf("invalid backup: %s", name)
		}
		manifest.CreatedAt = createdAt
		manifest.Stats = make(map[string]int)
	}

	return &BackupInfo{
		Name:      name,
		Path:      backupPath,
		CreatedAt: manifest.CreatedAt,
		Stats:     manifest.Stats,
	}, nil
}

func validateBackupName(name string) error {
	if name == "" {
		return fmt.Errorf("backup name is required")
	}
	if name != filepath.Base(name) {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	if _, err := parseBackupName(name); err != nil {
		return fmt.Errorf("invalid backup name: %q", name)
	}
	return nil
}

func copyFileAtomic(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(dst, data, 0600)
}

func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// validateJSON checks that a file contains valid JSON. A missing file
// is fine; the store re-seeds on next load.
func validateJSON(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var v interface{}
	return json.Unmarshal(data, &v)
}

// stateStats counts habits, recorded days, and total completions in a
// state file for the manifest.
func stateStats(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Habits      []json.RawMessage            `json:"habits"`
		Completions map[string][]json.RawMessage `json:"completions"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	completions := 0
	for _, ids := range doc.Completions {
		completions += len(ids)
	}

	return map[string]int{
		"habits":      len(doc.Habits),
		"days":        len(doc.Completions),
		"completions": completions,
	}, nil
}

// parseBackupName parses a backup directory name into a timestamp.
// Supports both the plain format (2006-01-02_150405) and the
// millisecond-suffixed one (2006-01-02_150405_XXX).
func parseBackupName(name string) (time.Time, error) {
	if len(name) == 21 {
		baseTime, err := time.Parse("2006-01-02_150405", name[:17])
		if err != nil {
			return time.Time{}, err
		}
		if name[17] != '_' {
			return time.Time{}, fmt.Errorf("invalid backup format")
		}
		ms, err := strconv.Atoi(name[18:])
		if err != nil || ms < 0 || ms > 999 {
			return time.Time{}, fmt.Errorf("invalid milliseconds")
		}
		return baseTime.Add(time.Duration(ms) * time.Millisecond), nil
	}

	return time.Parse("2006-01-02_150405", name)
}
