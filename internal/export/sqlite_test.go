package export

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Syuf1514/video-labeler/internal/recordset"
	"github.com/Syuf1514/video-labeler/pkg/types"
)

func fixtureTable(t *testing.T) *recordset.Table {
	t.Helper()
	tbl, err := recordset.New("path",
		[]string{"path", "good", "camera", `odd "name"`},
		[][]string{
			{"a.mp4", "1", "front", "x"},
			{"b.mp4", "", "", "y"},
			{"c.mp4", "0", "rear", "z"},
		})
	require.NoError(t, err)
	return tbl
}

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestToSQLite(t *testing.T) {
	tbl := fixtureTable(t)
	order, err := tbl.SortedOrder(types.SortSpec{Key: "path", Direction: types.Descending})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "labels.db")
	require.NoError(t, ToSQLite(context.Background(), tbl, order, path))

	db := openDB(t, path)

	rows, err := db.Query(`SELECT position, path, good, camera, "odd ""name""" FROM items ORDER BY position`)
	require.NoError(t, err)
	defer rows.Close()

	type item struct {
		pos    int
		path   string
		good   int
		camera sql.NullString
		odd    string
	}
	var got []item
	for rows.Next() {
		var it item
		require.NoError(t, rows.Scan(&it.pos, &it.path, &it.good, &it.camera, &it.odd))
		got = append(got, it)
	}
	require.NoError(t, rows.Err())
	require.Len(t, got, 3)
	assert.Equal(t, "c.mp4", got[0].path)
	assert.Equal(t, "b.mp4", got[1].path)
	assert.Equal(t, 0, got[1].good)
	assert.False(t, got[1].camera.Valid)
	assert.Equal(t, "a.mp4", got[2].path)
	assert.Equal(t, 1, got[2].good)
	assert.Equal(t, "front", got[2].camera.String)

	var positives int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM labels WHERE label = 'good' AND value = 1`).Scan(&positives))
	assert.Equal(t, 1, positives)
	var total int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM labels`).Scan(&total))
	assert.Equal(t, 3, total)
}

func TestToSQLite_ReplacesExisting(t *testing.T) {
	tbl := fixtureTable(t)
	path := filepath.Join(t.TempDir(), "labels.db")
	require.NoError(t, ToSQLite(context.Background(), tbl, tbl.IDs(), path))
	require.NoError(t, tbl.AddLabel("blurry"))
	require.NoError(t, ToSQLite(context.Background(), tbl, tbl.IDs(), path))

	db := openDB(t, path)
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM labels WHERE label = 'blurry'`).Scan(&n))
	assert.Equal(t, 3, n)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestToSQLite_CanceledLeavesNoFile(t *testing.T) {
	tbl := fixtureTable(t)
	path := filepath.Join(t.TempDir(), "labels.db")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, ToSQLite(ctx, tbl, tbl.IDs(), path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestInsertItem(t *testing.T) {
	assert.Equal(t, `INSERT INTO items (position, "path", "good") VALUES (?, ?, ?)`, insertItem([]string{"path", "good"}))
}
