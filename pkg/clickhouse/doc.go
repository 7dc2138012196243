// Package clickhouse checks SQL against a real ClickHouse server.
//
// The fixture runner can ask an engine to accept the canonical text of every
// query it prints. Client does this with EXPLAIN SYNTAX, which parses and
// analyzes a statement without executing it, so no tables need to exist for
// purely syntactic checks.
//
// Connections are made with clickhouse-go. The DSN is either a plain
// "host:port" address or a URL accepted by clickhouse.ParseDSN:
//
//	client, err := clickhouse.NewClient(ctx, "clickhouse://default:@localhost:9000/default")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	if err := client.Validate(ctx, "SELECT a, b FROM t WHERE a > 1"); err != nil {
//		var serr *clickhouse.SyntaxError
//		if errors.As(err, &serr) {
//			log.Printf("rejected with code %d: %s", serr.Code, serr.Message)
//		}
//	}
//
// mTLS is enabled through ClientOptions.TLSSettings.
package clickhouse
