// Package server runs the bloglist HTTP API.
//
// # Overview
//
// The server package owns every runtime component: the SQLite store, the
// token codec, the optional Prometheus collector, the blog service and the
// HTTP server in front of them.
//
// # Lifecycle
//
//	srv, err := server.New(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx) // blocks until ctx is canceled
//
// Run listens on server.http_addr. When the context is canceled the HTTP
// server is shut down with a fresh 5 second deadline and the store is closed.
//
// # Middleware
//
// Every request passes through, in order: request ID, real IP, the slog
// request logger, panic recovery, the metrics middleware (when enabled),
// CORS, and the bearer token extractor. The extractor never rejects a
// request; operations that need a token check it themselves.
//
// # Routes
//
//	GET    /health             liveness, plain "OK"
//	GET    /stats              like and author statistics
//	GET    /posts              all posts with owner summaries
//	POST   /posts              create (token)
//	GET    /posts/{id}         one post
//	PUT    /posts/{id}         replace content (token, owner only)
//	PUT    /posts/like/{id}    replace content (no token)
//	DELETE /posts/{id}         delete (token, owner only)
//	GET    /owners             all owners with their posts
//	POST   /owners             register
//	GET    /owners/{id}        one owner (token)
//	POST   /login              exchange credentials for a token
//	POST   /testing/reset      wipe everything (testing.enable_reset only)
//	GET    /metrics            Prometheus scrape (metrics.enabled only)
//
// Errors are written as {"error": "..."}. Unknown paths get 404 with
// "unknown endpoint".
package server
