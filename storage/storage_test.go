package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNormalizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string // suffix after the timestamp prefix
	}{
		{"hero banner.png", "_hero_banner.png"},
		{"product.jpg.jpg", "_product.jpg"},
		{"photo.JPG.jpg", "_photo.jpg"},
		{"simple.webp", "_simple.webp"},
	}
	for _, tc := range cases {
		got := NormalizeFilename(tc.in)
		if !strings.HasSuffix(got, tc.want) {
			t.Errorf("NormalizeFilename(%q) = %q, want suffix %q", tc.in, got, tc.want)
		}
		if strings.Contains(got, " ") {
			t.Errorf("NormalizeFilename(%q) = %q still contains spaces", tc.in, got)
		}
	}
}

func TestCleanupOldBackupsRemovesExpiredOnly(t *testing.T) {
	backupDir := t.TempDir()

	oldDir := filepath.Join(backupDir, "2020-01-01_00-00-00")
	freshDir := filepath.Join(backupDir, "fresh")
	if err := os.Mkdir(oldDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(freshDir, 0o755); err != nil {
		t.Fatal(err)
	}
	past := time.Now().Add(-72 * time.Hour)
	if err := os.Chtimes(oldDir, past, past); err != nil {
		t.Fatal(err)
	}

	CleanupOldBackups(backupDir, 24*time.Hour)

	if _, err := os.Stat(oldDir); !os.IsNotExist(err) {
		t.Error("expired backup not removed")
	}
	if _, err := os.Stat(freshDir); err != nil {
		t.Error("fresh backup removed")
	}
}
