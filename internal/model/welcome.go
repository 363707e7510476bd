// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "time"

// WelcomeText is the markdown greeting shown at the top of every session.
const WelcomeText = `Hello! I'm your AI budget assistant with **conversation memory**. I can help you manage your finances through natural conversation.

**Here's what I can do:**
- "Add $50 expense for groceries to Food category"
- "Create a budget of $300 for Transportation this month"
- "Show me my current spending"
- "I spent $25 on coffee today"
- "Set up a $1000 budget for rent"

**I remember our conversation**, so you can ask follow-up questions like:
- "How much have I spent so far?"
- "Add another $20 to that category"
- "What was my budget for that again?"

Just **talk to me naturally** and I'll help manage your budget while remembering our context!`

// SendFailedText replaces the assistant reply when a send fails.
const SendFailedText = "Sorry, I encountered an error. Please make sure the backend is running and try again."

// Welcome returns the synthesized welcome message. It is never persisted.
func Welcome(at time.Time) Message {
	return NewAssistantMessage(WelcomeText, at)
}

// SendFailed returns the assistant message shown after a failed send.
func SendFailed(at time.Time) Message {
	return NewAssistantMessage(SendFailedText, at)
}
