package cmd

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqlfixture/pkg/clickhouse"
	"github.com/pseudomuto/sqlfixture/pkg/config"
	"github.com/pseudomuto/sqlfixture/pkg/consts"
	"github.com/pseudomuto/sqlfixture/pkg/docker"
)

// findFixtures expands paths into a sorted list of fixture files. Directories
// are walked for *.sqltest files and anything else is treated as a glob.
func findFixtures(paths []string) ([]string, error) {
	var found []string

	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			files, err := walkFixtures(path)
			if err != nil {
				return nil, err
			}

			if len(files) == 0 {
				return nil, errors.Errorf("no fixtures found in directory: %s", path)
			}

			found = append(found, files...)
			continue
		}

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid fixture pattern: %s", path)
		}

		if len(matches) == 0 {
			return nil, errors.Errorf("no fixtures match: %s", path)
		}

		found = append(found, matches...)
	}

	slices.Sort(found)
	return slices.Compact(found), nil
}

func walkFixtures(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), consts.FixtureExt) {
			files = append(files, path)
		}

		return nil
	})

	return files, errors.Wrapf(err, "failed to walk directory: %s", dir)
}

// fixtureArgs returns the command line paths, or the configured patterns when
// none were given.
func fixtureArgs(args []string, cfg *config.Config) []string {
	if len(args) > 0 {
		return args
	}

	return cfg.FixturePatterns()
}

// connectValidator connects to the configured ClickHouse server, starting one
// in docker first when requested. The returned func releases both.
func connectValidator(ctx context.Context, ch config.ClickHouse) (*clickhouse.Client, func(), error) {
	stop := func() {}

	dsn := ch.DSN
	if dsn == "" {
		server := docker.NewServer(docker.ServerOptions{Version: ch.Version, ConfigDir: ch.ConfigDir})

		slog.Info("Starting ClickHouse container", "image", server.Image())
		if err := server.Start(ctx); err != nil {
			return nil, nil, err
		}

		stop = func() {
			if err := server.Stop(context.WithoutCancel(ctx)); err != nil {
				slog.Warn("Failed to stop ClickHouse container", "err", err)
			}
		}

		var err error
		if dsn, err = server.DSN(ctx); err != nil {
			stop()
			return nil, nil, err
		}
	}

	client, err := clickhouse.NewClientWithOptions(ctx, dsn, clickhouse.ClientOptions{TLSSettings: ch.TLS})
	if err != nil {
		stop()
		return nil, nil, err
	}

	return client, func() {
		_ = client.Close()
		stop()
	}, nil
}
