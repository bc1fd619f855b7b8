package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syuf1514/video-labeler/internal/recordset"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "temp file left behind: %s", e.Name())
	}
}

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "meta.csv", "\ufeffpath,good,notes\na.mp4,0,\"hello, world\"\nb.mp4,1,\n")

	s := New(nil)
	tbl, err := s.LoadTable(path, "path")
	require.NoError(t, err)
	assert.Equal(t, []string{"path", "good", "notes"}, tbl.Columns())
	assert.Equal(t, []string{"a.mp4", "b.mp4"}, tbl.IDs())

	notes, err := tbl.Cell("a.mp4", "notes")
	require.NoError(t, err)
	assert.Equal(t, "hello, world", notes)
}

func TestLoadTable_Errors(t *testing.T) {
	dir := t.TempDir()
	s := New(nil)

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "missing file", path: filepath.Join(dir, "nope.csv"), wantErr: types.ErrNotFound},
		{name: "directory", path: dir, wantErr: types.ErrNotFound},
		{name: "empty file", path: writeFile(t, dir, "empty.csv", ""), wantErr: types.ErrSchema},
		{name: "missing identity column", path: writeFile(t, dir, "noid.csv", "file,good\na,0\n"), wantErr: types.ErrSchema},
		{name: "ragged rows", path: writeFile(t, dir, "ragged.csv", "path,good\na,0,extra\n"), wantErr: types.ErrSchema},
		{name: "broken quoting", path: writeFile(t, dir, "quote.csv", "path,good\n\"a,0\n"), wantErr: types.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.LoadTable(tt.path, "path")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSaveTable_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.csv")
	tbl, err := recordset.New("path",
		[]string{"path", "good", "notes"},
		[][]string{{"a.mp4", "0", "x, y"}, {"b.mp4", "1", ""}})
	require.NoError(t, err)
	require.NoError(t, tbl.AddLabel("blurry"))

	s := New(nil)
	require.NoError(t, s.SaveTable(tbl, path))
	assertNoTempFiles(t, dir)

	got, err := s.LoadTable(path, "path")
	require.NoError(t, err)
	assert.Equal(t, tbl.Records(), got.Records())
}

func TestSaveTable_RenameFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "meta.csv", "path,good\na.mp4,0\n")

	old := renameFunc
	renameFunc = func(_, _ string) error { return os.ErrPermission }
	t.Cleanup(func() { renameFunc = old })

	logger, hook := logtest.NewNullLogger()
	s := New(logger)

	tbl, err := recordset.New("path", []string{"path", "good"}, [][]string{{"a.mp4", "1"}})
	require.NoError(t, err)

	err = s.SaveTable(tbl, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrPersistence)
	assert.ErrorIs(t, err, os.ErrPermission)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "path,good\na.mp4,0\n", string(data))
	assertNoTempFiles(t, dir)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, path, hook.LastEntry().Data["path"])
}

func TestSaveTable_PreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "meta.csv", "path\na\n")
	require.NoError(t, os.Chmod(path, 0o600))

	tbl, err := recordset.New("path", []string{"path"}, [][]string{{"a"}, {"b"}})
	require.NoError(t, err)
	require.NoError(t, New(nil).SaveTable(tbl, path))

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestLoadSnapshot(t *testing.T) {
	dir := t.TempDir()
	defaults := types.Snapshot{Cursor: 0, Sort: types.SortSpec{Key: "path", Direction: types.Ascending}}

	tests := []struct {
		name    string
		content string // empty means no file
		want    types.Snapshot
	}{
		{
			name: "missing file yields defaults",
			want: defaults,
		},
		{
			name:    "garbage yields defaults",
			content: "\x00\x01not json at all{{",
			want:    defaults,
		},
		{
			name:    "json array yields defaults",
			content: `[1,2,3]`,
			want:    defaults,
		},
		{
			name:    "all fields",
			content: `{"cursor":4,"source_path":"/v/meta.csv","sort_key":"duration","sort_direction":"descending"}`,
			want:    types.Snapshot{Cursor: 4, SourcePath: "/v/meta.csv", Sort: types.SortSpec{Key: "duration", Direction: types.Descending}},
		},
		{
			name:    "legacy keys",
			content: `{"idx":2,"csv_path":"old.csv","sort_by":"good","order":"Descending"}`,
			want:    types.Snapshot{Cursor: 2, SourcePath: "old.csv", Sort: types.SortSpec{Key: "good", Direction: types.Descending}},
		},
		{
			name:    "bad fields fall back one by one",
			content: `{"cursor":"three","source_path":"m.csv","sort_key":"","sort_direction":"sideways"}`,
			want:    types.Snapshot{Cursor: 0, SourcePath: "m.csv", Sort: types.SortSpec{Key: "path", Direction: types.Ascending}},
		},
		{
			name:    "negative cursor ignored",
			content: `{"cursor":-3}`,
			want:    defaults,
		},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "state"+string(rune('a'+i))+".json")
			if tt.content != "" {
				require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			}
			got := New(nil).LoadSnapshot(path, "path")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSaveSnapshot_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	s := New(nil)

	snap := types.Snapshot{Cursor: 7, SourcePath: "/data/m.csv", Sort: types.SortSpec{Key: "good", Direction: types.Descending}}
	require.NoError(t, s.SaveSnapshot(snap, path))
	assertNoTempFiles(t, dir)
	assert.Equal(t, snap, s.LoadSnapshot(path, "path"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sort_direction": "descending"`)
}

func TestSaveSnapshot_Failure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing-dir", "state.json")

	err := New(nil).SaveSnapshot(types.DefaultSnapshot("path"), path)
	assert.ErrorIs(t, err, types.ErrPersistence)
}
