package watcher

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatcherReportsSourceChanges(t *testing.T) {
	dir := t.TempDir()

	changes := make(chan []string, 1)
	accept := func(path string) bool {
		return strings.HasSuffix(path, ".java")
	}

	w, err := NewWatcher(50*time.Millisecond, nil, nil, accept, func(paths []string) {
		changes <- paths
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch([]string{dir}))

	writeFile(t, filepath.Join(dir, "Dog.java"), "class Dog {}")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	select {
	case paths := <-changes:
		require.Len(t, paths, 1)
		assert.Equal(t, "Dog.java", filepath.Base(paths[0]))
	case <-time.After(2 * time.Second):
		t.Fatal("no change batch received")
	}
}

func TestWatcherDebouncesBursts(t *testing.T) {
	dir := t.TempDir()

	changes := make(chan []string, 4)
	w, err := NewWatcher(100*time.Millisecond, nil, nil, nil, func(paths []string) {
		changes <- paths
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch([]string{dir}))

	for i := 0; i < 3; i++ {
		writeFile(t, filepath.Join(dir, "Dog.java"), strings.Repeat("x", i+1))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case paths := <-changes:
		assert.Len(t, paths, 1, "burst collapses into one batch entry")
	case <-time.After(2 * time.Second):
		t.Fatal("no change batch received")
	}

	select {
	case paths := <-changes:
		t.Fatalf("unexpected second batch: %v", paths)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherExcludesDirsAndFiles(t *testing.T) {
	dir := t.TempDir()
	hidden := filepath.Join(dir, "node_modules")
	require.NoError(t, os.Mkdir(hidden, 0o755))

	changes := make(chan []string, 1)
	w, err := NewWatcher(50*time.Millisecond, []string{"node_modules"}, []string{"*.tmp"}, nil, func(paths []string) {
		changes <- paths
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch([]string{dir}))

	writeFile(t, filepath.Join(hidden, "Dep.java"), "class Dep {}")
	writeFile(t, filepath.Join(dir, "scratch.tmp"), "x")

	select {
	case paths := <-changes:
		t.Fatalf("excluded paths reported: %v", paths)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherInvalidGlob(t *testing.T) {
	_, err := NewWatcher(time.Millisecond, []string{"["}, nil, nil, func([]string) {})
	require.Error(t, err)
}
