package service

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	dbpkg "github.com/saadjs/healthy-cli/internal/db"
)

const checksumSuffix = ".sha256"

type BackupInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
	// Verified is false when the checksum file is missing or stale.
	Verified bool `json:"verified"`
}

// CreateBackup writes a consistent snapshot of the open database to outPath
// with VACUUM INTO and stores its SHA-256 next to it.
func CreateBackup(db *sql.DB, outPath string) (BackupInfo, error) {
	if strings.TrimSpace(outPath) == "" {
		return BackupInfo{}, fmt.Errorf("backup output path is required")
	}
	if _, err := os.Stat(outPath); err == nil {
		return BackupInfo{}, fmt.Errorf("backup %s already exists", outPath)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return BackupInfo{}, fmt.Errorf("create backup directory: %w", err)
	}
	if _, err := db.Exec(`VACUUM INTO ?`, outPath); err != nil {
		return BackupInfo{}, fmt.Errorf("snapshot database: %w", err)
	}
	checksum, err := fileSHA256(outPath)
	if err != nil {
		return BackupInfo{}, err
	}
	if err := os.WriteFile(outPath+checksumSuffix, []byte(checksum+"\n"), 0o644); err != nil {
		return BackupInfo{}, fmt.Errorf("write checksum file: %w", err)
	}
	return inspectBackup(outPath)
}

// RestoreBackup replaces dbPath with the snapshot at backupPath. The copy is
// staged next to dbPath, migrated and integrity checked before it is renamed
// into place, so a bad snapshot never clobbers a working database.
func RestoreBackup(backupPath, dbPath string, force bool) error {
	if strings.TrimSpace(backupPath) == "" || strings.TrimSpace(dbPath) == "" {
		return fmt.Errorf("backup path and db path are required")
	}
	if !force {
		if _, err := os.Stat(dbPath); err == nil {
			return fmt.Errorf("target db already exists; use --force to overwrite")
		}
	}
	info, err := inspectBackup(backupPath)
	if err != nil {
		return err
	}
	if info.Checksum != "" && !info.Verified {
		return fmt.Errorf("backup checksum mismatch")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}

	staged := dbPath + ".restore"
	if err := copyFile(backupPath, staged); err != nil {
		return err
	}
	if err := checkSnapshot(staged); err != nil {
		_ = os.Remove(staged)
		return err
	}
	if err := os.Rename(staged, dbPath); err != nil {
		_ = os.Remove(staged)
		return fmt.Errorf("replace database: %w", err)
	}
	return nil
}

// checkSnapshot brings a staged database up to the current schema and runs
// SQLite's integrity check on it.
func checkSnapshot(path string) error {
	sqldb, err := dbpkg.OpenMigrated(path)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer sqldb.Close()
	var result string
	if err := sqldb.QueryRow(`PRAGMA integrity_check`).Scan(&result); err != nil {
		return fmt.Errorf("snapshot integrity check: %w", err)
	}
	if result != "ok" {
		return fmt.Errorf("snapshot is corrupt: %s", result)
	}
	return nil
}

// ListBackups returns the snapshots in dir, newest first.
func ListBackups(dir string) ([]BackupInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read backup dir: %w", err)
	}
	out := make([]BackupInfo, 0)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".db" {
			continue
		}
		info, err := inspectBackup(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, info)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Path > out[j].Path
	})
	return out, nil
}

func inspectBackup(path string) (BackupInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return BackupInfo{}, fmt.Errorf("stat backup: %w", err)
	}
	info := BackupInfo{Path: path, CreatedAt: st.ModTime(), SizeBytes: st.Size()}
	raw, err := os.ReadFile(path + checksumSuffix)
	if err != nil {
		return info, nil
	}
	info.Checksum = strings.TrimSpace(string(raw))
	actual, err := fileSHA256(path)
	if err != nil {
		return BackupInfo{}, err
	}
	info.Verified = actual == info.Checksum
	return info, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy backup: %w", err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return fmt.Errorf("sync %s: %w", dst, err)
	}
	return out.Close()
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
