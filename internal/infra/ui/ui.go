// Where: internal/infra/ui/ui.go
// What: UserInterface adapters for command output.
// Why: Commands print through one surface whether or not emoji are enabled.
package ui

import (
	"fmt"
	"io"
)

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by commands.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Error(msg string)
	Block(emoji, title string, rows []KeyValue)
}

// NewPlainUI returns a UserInterface that prints messages without prefixes.
// Blocks keep their emoji header.
func NewPlainUI(out io.Writer) UserInterface {
	return plainUI{
		out:     out,
		console: New(out),
	}
}

type plainUI struct {
	out     io.Writer
	console *Console
}

func (p plainUI) Info(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p plainUI) Warn(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p plainUI) Success(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p plainUI) Error(msg string) {
	fmt.Fprintln(p.out, msg)
}

func (p plainUI) Block(emoji, title string, rows []KeyValue) {
	writeBlock(p.console, emoji, title, rows)
}

// NewAssembleUI returns a UserInterface for assemble output with
// status prefixes that follow the emoji setting.
func NewAssembleUI(out io.Writer, emojiEnabled bool) UserInterface {
	return assembleUI{
		out:     out,
		console: NewWithEmoji(out, emojiEnabled),
	}
}

type assembleUI struct {
	out     io.Writer
	console *Console
}

func (a assembleUI) Info(msg string) {
	fmt.Fprintln(a.out, msg)
}

func (a assembleUI) Warn(msg string) {
	a.console.Warn(msg)
}

func (a assembleUI) Success(msg string) {
	a.console.Success(msg)
}

func (a assembleUI) Error(msg string) {
	a.console.Error(msg)
}

func (a assembleUI) Block(emoji, title string, rows []KeyValue) {
	writeBlock(a.console, emoji, title, rows)
}

func writeBlock(console *Console, emoji, title string, rows []KeyValue) {
	console.BlockStart(emoji, title)
	for _, kv := range rows {
		console.Item(kv.Key, kv.Value)
	}
	console.BlockEnd()
}
