// Package docker runs disposable ClickHouse servers with testcontainers.
//
// The fixture runner uses a Server to check that the canonical text of every
// query is accepted by a real engine without requiring a ClickHouse install:
//
//	server := docker.NewServer(docker.ServerOptions{Version: "25.7"})
//	if err := server.Start(ctx); err != nil {
//		log.Fatal(err)
//	}
//	defer func() { _ = server.Stop(ctx) }()
//
//	dsn, err := server.DSN(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := clickhouse.NewClient(ctx, dsn)
//
// ServerOptions.ConfigDir mounts a config.d directory into the container for
// settings that the default image lacks.
package docker
