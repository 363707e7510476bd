// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - The "serve" command: run the in-memory mock backend.
package cli

import (
	"context"

	"github.com/jeranaias/budgetchat-tui/internal/server"
)

// RunServe runs the mock backend until ctx is cancelled.
// --addr overrides server.addr from the config file.
func RunServe(ctx context.Context, env *Env, args Args) error {
	cfg := env.Config.Server
	addr := args.Addr
	if addr == "" {
		addr = cfg.Addr
	}

	srv := server.New(server.Config{
		Addr:      addr,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
		Logger:    env.Logger,
		Now:       env.Now,
	})

	env.info(args.Quiet, "Mock budget backend listening on %s (ctrl+c to stop)", addr)
	if err := srv.ListenAndServe(ctx); err != nil {
		return NewCommandError("serve", "listen", "mock backend stopped", err)
	}
	return nil
}
