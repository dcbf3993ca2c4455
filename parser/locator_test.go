package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindJournalPriority(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "$J"), []byte("modern"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "$USNJR~1"), []byte("short"), 0644))

	journal, err := FindJournal(dir, DefaultCandidates)
	require.NoError(t, err)
	defer journal.Close()

	assert.Equal(t, "$J", journal.Name)
	assert.Equal(t, filepath.Join(dir, "$J"), journal.Path)
	assert.Equal(t, int64(6), journal.Size)

	buf := make([]byte, 6)
	n, err := journal.ReadAt(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "modern", string(buf[:n]))
}

func TestFindJournalAlternateName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "$USNJR~1"), []byte("short"), 0644))

	journal, err := FindJournal(dir, DefaultCandidates)
	require.NoError(t, err)
	defer journal.Close()

	assert.Equal(t, "$USNJR~1", journal.Name)
	assert.Equal(t, int64(5), journal.Size)
}

func TestFindJournalSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "$J"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "$USNJR~1"), []byte("short"), 0644))

	journal, err := FindJournal(dir, DefaultCandidates)
	require.NoError(t, err)
	defer journal.Close()

	assert.Equal(t, "$USNJR~1", journal.Name)
}

func TestFindJournalNotFound(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "$MFT"), []byte("mft"), 0644))

	journal, err := FindJournal(dir, DefaultCandidates)
	assert.Nil(t, journal)
	assert.True(t, errors.Is(err, ErrJournalNotFound))
	assert.False(t, errors.Is(err, ErrIOFailure))

	// Missing directory is also just not found.
	_, err = FindJournal(filepath.Join(dir, "missing"), DefaultCandidates)
	assert.True(t, errors.Is(err, ErrJournalNotFound))
}
