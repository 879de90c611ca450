package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"tour-lab/internal/adapters/repositories"
	"tour-lab/internal/platform/db"
	"tour-lab/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFiles(t *testing.T, dists string) (string, string, string) {
	t.Helper()

	dir := t.TempDir()
	loc := filepath.Join(dir, "edinburgh.csv")
	dist := filepath.Join(dir, "dists.csv")
	require.NoError(t, os.WriteFile(loc, []byte("Name,Lattitude,Longitude\nA,55.9486,-3.1999\nB,55.9527,-3.1723\n"), 0o644))
	require.NoError(t, os.WriteFile(dist, []byte(dists), 0o644))
	return loc, dist, filepath.Join(dir, "tourlab.db")
}

func TestInitAndSeed(t *testing.T) {
	ctx := context.Background()
	loc, dist, dbPath := writeFiles(t, "key,dist\n*:A,1\nA:*,1\n*:B,2\nB:*,2\nA:B,3\nB:A,3\n")

	require.NoError(t, initAndSeed(ctx, zap.NewNop(), db.DriverSQLite, dbPath, repositories.SQLite, loc, dist))

	conn, err := db.Open(db.DriverSQLite, dbPath)
	require.NoError(t, err)
	defer conn.Close()

	world, err := services.LoadWorld(ctx, repositories.NewSQLWorldRepository(conn))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, world.Names())
	assert.Equal(t, 6, world.Distances().Len())
}

func TestInitAndSeedRejectsIncompleteInstance(t *testing.T) {
	loc, dist, dbPath := writeFiles(t, "key,dist\n*:A,1\nA:*,1\n")

	err := initAndSeed(context.Background(), zap.NewNop(), db.DriverSQLite, dbPath, repositories.SQLite, loc, dist)
	assert.Error(t, err)

	_, statErr := os.Stat(dbPath)
	assert.True(t, os.IsNotExist(statErr), "nothing should be written")
}
