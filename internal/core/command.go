// Package core provides the command model shared by every rule.
package core

import (
	"strings"
	"sync"

	"github.com/google/shlex"
)

// Command represents one failed shell invocation. Script and Output never
// change after construction; Parts is computed at most once per instance.
type Command struct {
	Script string // raw text as typed
	Output string // captured stderr+stdout, stderr first

	partsOnce sync.Once
	parts     []string
}

// NewCommand creates a Command from a script and its captured output.
// Leading and trailing whitespace in the script is not meaningful to any rule,
// so it is trimmed up front.
func NewCommand(script, output string) *Command {
	return &Command{
		Script: strings.TrimSpace(script),
		Output: output,
	}
}

// Parts returns the shell-lexical tokens of Script. Quoting is respected, so
// `git commit -m 'hello world'` yields four tokens. On a lexing error
// (unbalanced quotes and the like) it degrades to whitespace splitting rather
// than failing the caller.
func (c *Command) Parts() []string {
	c.partsOnce.Do(func() {
		tokens, err := shlex.Split(c.Script)
		if err != nil {
			tokens = strings.Fields(c.Script)
		}
		c.parts = tokens
	})
	return c.parts
}

// ScriptPart returns the token at index i, or "" when out of range.
func (c *Command) ScriptPart(i int) string {
	parts := c.Parts()
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}

// Update derives a new Command with a different script. Output is preserved
// and the token cache starts fresh for the new script.
func (c *Command) Update(script string) *Command {
	return NewCommand(script, c.Output)
}

// HasOutput reports whether any output was captured.
func (c *Command) HasOutput() bool {
	return strings.TrimSpace(c.Output) != ""
}
