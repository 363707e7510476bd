// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-based interactive chat for budgetchat.
//
// The REPL drives the same session view-model as the full-screen UI and
// prints each new message as it arrives.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/budgetchat-tui/internal/config"
	"github.com/jeranaias/budgetchat-tui/internal/session"
	"github.com/jeranaias/budgetchat-tui/internal/ui/components"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader reads one line of user input. *ChatCLI satisfies it.
type LineReader interface {
	ReadInput(prompt string) (string, error)
}

// ChatCLI provides input history and line editing for interactive chat.
type ChatCLI struct {
	line        *liner.State
	historyFile string
}

// NewChatCLI creates a ChatCLI whose history lives in the config directory.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	c := &ChatCLI{
		line:        line,
		historyFile: filepath.Join(configDir, "chat_history"),
	}
	c.LoadHistory()
	return c
}

// LoadHistory loads input history from file.
func (c *ChatCLI) LoadHistory() {
	if f, err := os.Open(c.historyFile); err == nil {
		_, _ = c.line.ReadHistory(f)
		f.Close()
	}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with 0600 permissions.
func (c *ChatCLI) SaveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(c.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = c.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (c *ChatCLI) Close() {
	c.SaveHistory()
	c.line.Close()
}

// =============================================================================
// REPL
// =============================================================================

// RunChat runs the interactive chat until /quit, EOF or ctrl+c.
func RunChat(ctx context.Context, env *Env, args Args) error {
	input := NewChatCLI()
	defer input.Close()
	return runChatLoop(ctx, env, args, input)
}

// chatREPL holds the state of one interactive chat.
type chatREPL struct {
	env      *Env
	sess     *session.Session
	renderer components.MarkdownRenderer
	printed  int
}

func runChatLoop(ctx context.Context, env *Env, args Args, input LineReader) error {
	sess := session.New(session.Config{
		Backend:           env.Client,
		Logger:            env.Logger,
		Now:               env.Now,
		StatsRefreshDelay: env.Config.Session.StatsRefreshDelay.Std(),
		Recorder:          env.Recorder,
	})
	defer sess.Close()

	r := &chatREPL{env: env, sess: sess, renderer: env.renderer(false)}

	if !args.Quiet {
		fmt.Fprintln(env.Out, DimStyle.Render(components.LoadingHistoryText))
	}
	sess.Init(ctx)
	r.printNew()
	if !args.Quiet {
		fmt.Fprintln(env.Out, DimStyle.Render("Type /help for commands, /quit to exit."))
	}

	prompt := PromptStyle.Render("budget> ")
	for {
		line, err := input.ReadInput(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(env.Out)
				return nil
			}
			return err
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "/") {
			if !r.slash(ctx, text) {
				return nil
			}
			continue
		}
		if strings.EqualFold(text, "exit") || strings.EqualFold(text, "quit") {
			return nil
		}

		// The user's own line is already on screen.
		r.printed++
		if !args.Quiet {
			fmt.Fprintln(env.Out, DimStyle.Render(components.ThinkingText))
		}
		sess.Send(ctx, line)
		r.printNew()

		if err := ctx.Err(); err != nil {
			return nil
		}
	}
}

// printNew prints messages not yet shown.
func (r *chatREPL) printNew() {
	msgs := r.sess.Snapshot().Messages
	if r.printed > len(msgs) {
		r.printed = 0
	}
	for _, m := range msgs[r.printed:] {
		printMessage(r.env.Out, r.renderer, r.env.width(), m)
	}
	r.printed = len(msgs)
}

// slash runs a slash command and reports whether the REPL continues.
func (r *chatREPL) slash(ctx context.Context, text string) bool {
	name := strings.ToLower(strings.Fields(text)[0])
	out := r.env.Out

	switch name {
	case "/quit", "/exit", "/q":
		return false

	case "/clear":
		r.sess.ClearMemory(ctx)
		fmt.Fprintln(out, IncomeStyle.Render("Chat memory cleared."))
		r.printed = 0
		r.printNew()

	case "/stats":
		r.sess.RefreshStats(ctx)
		printStats(out, r.env.now(), r.sess.Snapshot().Stats)

	case "/history":
		for _, m := range r.sess.Snapshot().Messages {
			printMessage(out, r.renderer, r.env.width(), m)
		}

	case "/help":
		printChatHelp(out)

	default:
		fmt.Fprintln(out, ExpenseStyle.Render("Unknown command: "+name+" (try /help)"))
	}
	return true
}

func printChatHelp(w io.Writer) {
	fmt.Fprintln(w, TitleStyle.Render("Commands"))
	fmt.Fprintln(w, RenderField("/clear", "clear conversation memory"))
	fmt.Fprintln(w, RenderField("/stats", "show this month's budget overview"))
	fmt.Fprintln(w, RenderField("/history", "print the conversation so far"))
	fmt.Fprintln(w, RenderField("/help", "show this help"))
	fmt.Fprintln(w, RenderField("/quit", "exit"))
	fmt.Fprintln(w, TitleStyle.Render("Try"))
	for _, a := range components.QuickActions {
		fmt.Fprintln(w, DimStyle.Render(`  "`+a.Text+`"`))
	}
}
