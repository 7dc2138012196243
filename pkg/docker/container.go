package docker

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	imageRepository = "clickhouse/clickhouse-server"
	httpPort        = nat.Port("8123/tcp")
	startupTimeout  = 5 * time.Minute
)

type (
	// ServerOptions configures a disposable ClickHouse server.
	ServerOptions struct {
		// Version is the clickhouse-server image tag (default: latest).
		Version string

		// ConfigDir is mounted as /etc/clickhouse-server/config.d when set.
		// Relative paths are resolved against the working directory.
		ConfigDir string
	}

	// Server is a ClickHouse server running in a container for the duration
	// of a fixture run.
	Server struct {
		options   ServerOptions
		container *clickhouse.ClickHouseContainer
	}
)

// NewServer returns a server that is started with Start.
//
// Example:
//
//	server := docker.NewServer(docker.ServerOptions{Version: "25.7"})
//	if err := server.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer server.Stop(ctx)
//
//	dsn, err := server.DSN(ctx)
func NewServer(opts ServerOptions) *Server {
	return &Server{options: opts}
}

// Image returns the image reference the server runs.
func (s *Server) Image() string {
	version := s.options.Version
	if version == "" {
		version = "latest"
	}

	return fmt.Sprintf("%s:%s-alpine", imageRepository, version)
}

// Start starts the container and waits until the HTTP interface answers.
func (s *Server) Start(ctx context.Context) error {
	if s.container != nil {
		return errors.New("server is already running")
	}

	customizers := []testcontainers.ContainerCustomizer{
		clickhouse.WithUsername("default"),
		clickhouse.WithPassword(""),
		testcontainers.WithWaitStrategyAndDeadline(
			startupTimeout,
			wait.NewHTTPStrategy("/").
				WithPort(httpPort).
				WithStatusCodeMatcher(func(status int) bool { return status == 200 }),
		),
	}

	if s.options.ConfigDir != "" {
		configDir, err := filepath.Abs(s.options.ConfigDir)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve config dir: %s", s.options.ConfigDir)
		}

		customizers = append(customizers, testcontainers.WithHostConfigModifier(func(hc *container.HostConfig) {
			hc.Mounts = []mount.Mount{{
				Type:     mount.TypeBind,
				Source:   configDir,
				Target:   "/etc/clickhouse-server/config.d",
				ReadOnly: true,
			}}
		}))
	}

	c, err := clickhouse.Run(ctx, s.Image(), customizers...)
	if err != nil {
		return errors.Wrap(err, "failed to start ClickHouse container")
	}

	s.container = c
	return nil
}

// Stop terminates and removes the container. Stopping a server that is not
// running is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	if s.container == nil {
		return nil
	}

	err := s.container.Terminate(ctx)
	s.container = nil

	return errors.Wrap(err, "failed to stop ClickHouse container")
}

// DSN returns a clickhouse:// URL for the native protocol port.
func (s *Server) DSN(ctx context.Context) (string, error) {
	if s.container == nil {
		return "", errors.New("server is not running")
	}

	dsn, err := s.container.ConnectionString(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to get connection string")
	}

	return dsn, nil
}

// IsRunning returns true if the container is currently running
func (s *Server) IsRunning() bool {
	return s.container != nil
}
