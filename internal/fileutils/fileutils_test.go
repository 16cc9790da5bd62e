package fileutils_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"arac/ar-rollforward/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.csv")
	touch(t, testFile)

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.csv")))
	assert.False(t, fileutils.FileExists(tmpDir), "directories are not files")
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.csv")
	touch(t, testFile)
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	newDir := filepath.Join(tmpDir, "new", "nested", "dir")
	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	assert.NoError(t, fileutils.EnsureDirectoryExists(tmpDir))
}

func TestListInputFiles(t *testing.T) {
	tmpDir := t.TempDir()

	files := map[string]bool{
		"b.csv":               true,
		"a.CSV":               true,
		"north.xlsx":          true,
		"notes.txt":           false,
		".hidden.csv":         false,
		"~$north.xlsx":        false,
		"nested/c.csv":        true,
		".git/objects/x.csv":  false,
		"nested/report.xlsm":  false,
		"nested/deeper/d.csv": true,
	}
	var want []string
	for name, included := range files {
		path := filepath.Join(tmpDir, filepath.FromSlash(name))
		touch(t, path)
		if included {
			want = append(want, path)
		}
	}

	got, err := fileutils.ListInputFiles([]string{tmpDir})
	require.NoError(t, err)
	assert.ElementsMatch(t, want, got)
	assert.IsIncreasing(t, got)
}

func TestListInputFiles_FilesAndDuplicates(t *testing.T) {
	tmpDir := t.TempDir()
	a := filepath.Join(tmpDir, "a.csv")
	other := filepath.Join(tmpDir, "export.dat")
	touch(t, a)
	touch(t, other)

	got, err := fileutils.ListInputFiles([]string{other, tmpDir, a})
	require.NoError(t, err)
	assert.Equal(t, []string{a, other}, got, "explicit files are taken regardless of extension")

	_, err = fileutils.ListInputFiles([]string{filepath.Join(tmpDir, "missing.csv")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestListInputFiles_SkipsReports(t *testing.T) {
	tmpDir := t.TempDir()
	extract := filepath.Join(tmpDir, "north.csv")
	report := filepath.Join(tmpDir, "output_file 2024-03-05 1407.xlsx")
	named := filepath.Join(tmpDir, "roll.xlsx")
	touch(t, extract)
	touch(t, report)
	touch(t, named)

	got, err := fileutils.ListInputFiles([]string{tmpDir}, named, "")
	require.NoError(t, err)
	assert.Equal(t, []string{extract}, got)

	got, err = fileutils.ListInputFiles([]string{report})
	require.NoError(t, err)
	assert.Equal(t, []string{report}, got, "an explicit file is always taken")
}

func TestDefaultOutputName(t *testing.T) {
	now := time.Date(2024, 2, 3, 9, 5, 0, 0, time.UTC)
	assert.Equal(t, filepath.Join("out", "output_file 2024-02-03 0905.xlsx"), fileutils.DefaultOutputName("out", "xlsx", now))
	assert.Equal(t, filepath.Join("out", "output_file 2024-02-03 0905.csv"), fileutils.DefaultOutputName("out", ".csv", now))
}

func TestWriteAtomic(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "reports", "out.csv")

	err := fileutils.WriteAtomic(target, func(tmpPath string) error {
		assert.NotEqual(t, target, tmpPath)
		assert.Equal(t, filepath.Dir(target), filepath.Dir(tmpPath))
		return os.WriteFile(tmpPath, []byte("ok"), 0600)
	})
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))

	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestWriteAtomic_FailureLeavesNothing(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "out.xlsx")
	boom := errors.New("boom")

	err := fileutils.WriteAtomic(target, func(tmpPath string) error {
		require.NoError(t, os.WriteFile(tmpPath, []byte("partial"), 0600))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, fileutils.FileExists(target))

	entries, err := os.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temporary file is removed")
}
