package docker_test

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/pseudomuto/sqlfixture/pkg/consts"
	. "github.com/pseudomuto/sqlfixture/pkg/docker"
	"github.com/stretchr/testify/require"
	"gotest.tools/v3/fs"
)

const testConfig = `<?xml version="1.0"?>
<clickhouse>
    <logger>
        <level>warning</level>
        <console>true</console>
    </logger>
</clickhouse>`

// skipIfNoDocker skips the test if Docker is not available
func skipIfNoDocker(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping Docker tests in short mode")
	}

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("Docker not available")
	}

	if err := exec.Command("docker", "ps").Run(); err != nil {
		t.Skip("Docker daemon not running")
	}
}

func TestServer_Image(t *testing.T) {
	require.Equal(t, "clickhouse/clickhouse-server:latest-alpine", NewServer(ServerOptions{}).Image())
	require.Equal(t, "clickhouse/clickhouse-server:25.7-alpine",
		NewServer(ServerOptions{Version: consts.DefaultClickHouseVersion}).Image())
}

func TestServer_NotRunning(t *testing.T) {
	server := NewServer(ServerOptions{})
	require.False(t, server.IsRunning())
	require.NoError(t, server.Stop(context.Background()))

	_, err := server.DSN(context.Background())
	require.EqualError(t, err, "server is not running")
}

func TestServer_StartStop(t *testing.T) {
	skipIfNoDocker(t)

	dir := fs.NewDir(t, "clickhouse", fs.WithDir("config.d", fs.WithFile("logger.xml", testConfig)))
	server := NewServer(ServerOptions{
		Version:   consts.DefaultClickHouseVersion,
		ConfigDir: dir.Join("config.d"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	defer func() { _ = server.Stop(ctx) }()

	require.NoError(t, server.Start(ctx))
	require.True(t, server.IsRunning())
	require.EqualError(t, server.Start(ctx), "server is already running")

	dsn, err := server.DSN(ctx)
	require.NoError(t, err)
	require.Contains(t, dsn, "clickhouse://")

	require.NoError(t, server.Stop(ctx))
	require.False(t, server.IsRunning())
}
