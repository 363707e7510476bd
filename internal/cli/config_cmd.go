// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - The "config" command.
package cli

import (
	"fmt"
	"os"

	"github.com/jeranaias/budgetchat-tui/internal/config"
)

// RunConfig prints the effective config, its path, or writes a default file.
func RunConfig(env *Env, args Args) error {
	switch args.Subcommand {
	case "path":
		fmt.Fprintln(env.Out, env.ConfigPath)
		return nil

	case "init":
		if _, err := os.Stat(env.ConfigPath); err == nil {
			return NewValidationErrorWithExample("config", env.ConfigPath,
				"file already exists", "budgetchat config show")
		}
		if err := config.SaveTOML(config.Default(), env.ConfigPath); err != nil {
			return NewCommandError("config", "init", "cannot write config file", err)
		}
		env.info(false, "Wrote %s", env.ConfigPath)
		return nil

	default:
		data, err := env.Config.TOML()
		if err != nil {
			return NewCommandError("config", "show", "cannot encode config", err)
		}
		_, err = env.Out.Write(data)
		return err
	}
}
