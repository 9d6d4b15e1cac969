package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Beastly713/sss256/pkg/format"
	"github.com/Beastly713/sss256/pkg/shamir"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeArmoredShares splits secret into armored share files inside dir.
// Every call is a separate split with the same timestamp.
func writeArmoredShares(t *testing.T, dir, name string, secret []byte, n, k int) {
	t.Helper()
	splitID := uuid.NewString()
	parts, err := shamir.Split(secret, n, k)
	require.NoError(t, err)

	for i, part := range parts {
		var buf bytes.Buffer
		w, err := format.NewWriter(&buf, &format.Header{
			OriginalFilename: name,
			Timestamp:        1700000000,
			SplitID:          splitID,
			Index:            i + 1,
			Total:            n,
			Threshold:        k,
			Identifier:       part[0],
			Field:            "0x11d",
		})
		require.NoError(t, err)
		_, err = w.Write(part)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, shareFileName(name, i+1, n)), buf.Bytes(), 0600))
	}
}

func press(t *testing.T, m model, msg tea.KeyMsg) model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(model)
	if cmd != nil {
		next, _ = m.Update(cmd())
		m = next.(model)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyC     = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}}
)

func TestInteractiveListsShares(t *testing.T) {
	dir := t.TempDir()
	writeArmoredShares(t, dir, "plans.txt", []byte("attack at dawn"), 3, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0600))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0700))

	m := initialModel(dir)
	names := make([]string, len(m.files))
	for i, f := range m.files {
		names[i] = f.name
	}
	assert.Equal(t, []string{"..", "plans_1_of_3.share", "plans_2_of_3.share", "plans_3_of_3.share", "sub"}, names)
	assert.Contains(t, m.View(), "plans_1_of_3.share")
}

func TestInteractiveCombine(t *testing.T) {
	dir := t.TempDir()
	secret := []byte("attack at dawn")
	writeArmoredShares(t, dir, "plans.txt", secret, 3, 2)

	m := initialModel(dir)
	m = press(t, m, keyDown)
	m = press(t, m, keySpace)

	// One share is below the threshold.
	m = press(t, m, keyC)
	assert.True(t, m.failed)
	assert.Contains(t, m.status, "needs 2 shares")
	assert.NoFileExists(t, filepath.Join(dir, "plans.txt"))

	m = press(t, m, keyDown)
	m = press(t, m, keyDown)
	m = press(t, m, keySpace)
	m = press(t, m, keyC)
	require.False(t, m.failed, m.status)
	assert.Contains(t, m.status, "Success")

	restored, err := os.ReadFile(filepath.Join(dir, "plans.txt"))
	require.NoError(t, err)
	assert.Equal(t, secret, restored)

	for _, f := range m.files {
		assert.False(t, f.selected, "selection is cleared after success")
	}
}

func TestInteractiveNothingSelected(t *testing.T) {
	m := initialModel(t.TempDir())
	m = press(t, m, keyC)
	assert.True(t, m.failed)
	assert.Contains(t, m.status, "no shares selected")
}

func TestInteractiveQuit(t *testing.T) {
	m := initialModel(t.TempDir())
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.True(t, next.(model).quitting)
	assert.Equal(t, "Bye!\n", next.(model).View())
}
