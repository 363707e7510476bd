// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// transcript_cmd.go - The "transcript" command: read recorded conversations.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jeranaias/budgetchat-tui/internal/export"
	"github.com/jeranaias/budgetchat-tui/internal/format"
	"github.com/jeranaias/budgetchat-tui/internal/model"
	"github.com/jeranaias/budgetchat-tui/internal/transcript"
	"github.com/jeranaias/budgetchat-tui/internal/util"
)

// defaultTranscriptLimit is the list size when --limit is not given.
const defaultTranscriptLimit = 20

// RunTranscript lists recorded sessions or prints one of them.
func RunTranscript(ctx context.Context, env *Env, args Args) error {
	store, err := transcript.Open(env.Config.Transcript.Path)
	if err != nil {
		return NewCommandError("transcript", "open", "cannot open transcript store", err)
	}
	defer store.Close()

	switch args.Subcommand {
	case "show":
		return showTranscript(ctx, env, store, args)
	case "export":
		return exportTranscript(ctx, env, store, args)
	}
	return listTranscripts(ctx, env, store, args)
}

func listTranscripts(ctx context.Context, env *Env, store *transcript.Store, args Args) error {
	limit := args.Limit
	if limit <= 0 {
		limit = defaultTranscriptLimit
	}

	sessions, err := store.List(ctx, limit)
	if err != nil {
		return NewCommandError("transcript", "list", "query failed", err)
	}

	if args.JSON {
		if sessions == nil {
			sessions = []transcript.SessionMeta{}
		}
		return writeJSON(env.Out, sessions)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(env.Out, DimStyle.Render("No recorded conversations."))
		if !env.Config.Transcript.Enabled {
			fmt.Fprintln(env.Out, DimStyle.Render("Enable recording with [transcript] enabled = true."))
		}
		return nil
	}

	fmt.Fprintln(env.Out, TitleStyle.Render("Recorded conversations"))
	for _, s := range sessions {
		started := s.StartedAt.Local().Format("2006-01-02 ") + format.Time(s.StartedAt)
		fmt.Fprintf(env.Out, "%s  %s  %s  %s\n",
			ValueStyle.Render(s.ID[:min(8, len(s.ID))]),
			DimStyle.Render(started),
			DimStyle.Render(util.PadRight(strconv.Itoa(s.MessageCount)+" msgs", 8)),
			s.Preview)
	}
	return nil
}

func showTranscript(ctx context.Context, env *Env, store *transcript.Store, args Args) error {
	id, err := store.Resolve(ctx, args.ID)
	if err != nil {
		return NewCommandError("transcript", "show", "no session matches "+args.ID, err)
	}
	msgs, err := store.Messages(ctx, id)
	if err != nil {
		return NewCommandError("transcript", "show", "query failed", err)
	}

	if args.JSON {
		if msgs == nil {
			msgs = []model.Message{}
		}
		return writeJSON(env.Out, msgs)
	}

	r := env.renderer(false)
	for _, m := range msgs {
		printMessage(env.Out, r, env.width(), m)
	}
	return nil
}

func exportTranscript(ctx context.Context, env *Env, store *transcript.Store, args Args) error {
	conv, err := store.Load(ctx, args.ID)
	if err != nil {
		return NewCommandError("transcript", "export", "no session matches "+args.ID, err)
	}

	opts := &export.Options{
		OutputDir:         args.OutputDir,
		IncludeTimestamps: env.Config.UI.ShowTimestamps,
		Now:               env.Now,
	}
	exp, err := export.ForFormat(args.Format, opts)
	if err != nil {
		return NewValidationError("format", args.Format, err.Error())
	}

	path, err := export.ToFile(conv, exp, opts)
	if err != nil {
		return NewCommandError("transcript", "export", "cannot write export", err)
	}
	fmt.Fprintln(env.Out, path)
	return nil
}
