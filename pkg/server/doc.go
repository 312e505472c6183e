// Package server is the portal's HTTP front.
//
// It serves three surfaces from one chi router:
//
//   - Page shell (GET /*): request paths are canonicalized (308 when they
//     change), resolved against the navigation table (302 for redirects), and
//     rendered as an HTML shell carrying the resolution as JSON. Unknown paths
//     render the lazily loaded not-found template with status 404.
//   - JSON API (/api/...): path resolution, icon lookup, translation catalogs
//     and folder listings. Failures are {"code","message","detail"} bodies with
//     a status derived from the error code.
//   - Navigation sessions (GET /ws/navigate): a WebSocket per browser tab. Each
//     session owns a navigation.Navigator and answers navigate, back and
//     forward messages in order.
//
// The page locale comes from ?lang=, then the lang cookie, then
// Accept-Language. Metrics and tracing are optional and added with
// WithMetrics and WithTracing.
//
// # Lifecycle
//
//	srv := server.New(cfg, table, catalog, explorer)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	if err := srv.ListenAndServe(ctx); err != nil {
//		log.Fatal(err)
//	}
//
// ListenAndServe returns once ctx is done and in-flight requests have drained
// or Config.ShutdownTimeout elapsed.
package server
