// Showrec - Streaming Title Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showrec

/*
Package supervisor runs the long-lived Showrec services under a suture v4
supervisor tree.

The tree has two layers so a failing maintenance job never takes the API down:

	RootSupervisor ("showrec")
	├── DataSupervisor ("data-layer")
	│   └── ProfileGCService (unless the profile store is in memory)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's exponential backoff. Supervisor
events are logged through sutureslog, which main wires to the zerolog-backed
slog handler from internal/logging:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewProfileGCService(db, cfg.Profiles.GCInterval, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

When Serve returns after cancellation, UnstoppedServiceReport lists any
service that did not stop within TreeConfig.ShutdownTimeout.
*/
package supervisor
