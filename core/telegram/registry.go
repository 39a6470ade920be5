package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/m3rciful/shopbot/core/logger"
	"github.com/m3rciful/shopbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

// Registry holds slash commands, reply-keyboard label handlers and fallbacks.
type Registry struct {
	commands map[string]commands.Command

	labelsMu sync.RWMutex
	labels   map[string]tele.HandlerFunc

	textFallback tele.HandlerFunc
	contact      tele.HandlerFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]commands.Command),
		labels:   make(map[string]tele.HandlerFunc),
	}
}

// RegisterCommand adds a new command. Invalid and duplicate registrations are logged and skipped.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	if r == nil || name == "" || cmd.Handler == nil || cmd.Description == "" {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.skip",
			slog.String("name", name),
			slog.String("reason", "invalid"),
		)
		return
	}
	if name[0] != '/' {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.skip",
			slog.String("name", name),
			slog.String("reason", "no_slash_prefix"),
		)
		return
	}
	if _, exists := r.commands[name]; exists {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.duplicate",
			slog.String("name", name),
		)
		return
	}
	r.commands[name] = cmd
}

// ListCommands returns commands sorted by name, optionally without hidden and admin-only ones.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	var list []tele.Command
	for cmd, meta := range r.commands {
		if visibleOnly && (meta.Hidden || meta.AdminOnly) {
			continue
		}
		list = append(list, tele.Command{Text: strings.TrimPrefix(cmd, "/"), Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// LookupCommand finds a command by name or alias and returns its canonical key.
func (r *Registry) LookupCommand(name string) (string, commands.Command, bool) {
	name = strings.TrimSpace(name)
	if !strings.HasPrefix(name, "/") {
		name = "/" + name
	}
	if cmd, ok := r.commands[name]; ok {
		return name, cmd, true
	}
	for key, cmd := range r.commands {
		for _, alias := range cmd.Aliases {
			if alias == name || "/"+alias == name {
				return key, cmd, true
			}
		}
	}
	return "", commands.Command{}, false
}

// Commands returns all registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	return r.commands
}

// RegisterLabel binds the exact text of a reply-keyboard button to a handler.
// Labels are compared after trimming surrounding whitespace.
func (r *Registry) RegisterLabel(label string, handler tele.HandlerFunc) error {
	key := strings.TrimSpace(label)
	if r == nil || key == "" || handler == nil {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.label.skip",
			slog.String("label", label),
			slog.Bool("handler_nil", handler == nil),
		)
		return errors.New("invalid label registration")
	}
	r.labelsMu.Lock()
	defer r.labelsMu.Unlock()
	if _, exists := r.labels[key]; exists {
		return fmt.Errorf("label already registered: %s", key)
	}
	r.labels[key] = handler
	return nil
}

// Label returns the handler bound to text, if any.
func (r *Registry) Label(text string) (tele.HandlerFunc, bool) {
	r.labelsMu.RLock()
	defer r.labelsMu.RUnlock()
	h, ok := r.labels[strings.TrimSpace(text)]
	return h, ok
}

// ListLabels returns sorted labels for diagnostics.
func (r *Registry) ListLabels() []string {
	r.labelsMu.RLock()
	defer r.labelsMu.RUnlock()
	names := make([]string, 0, len(r.labels))
	for k := range r.labels {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// SetTextFallback sets the handler for text that matches no label or command.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.textFallback = h
}

// TextFallback returns the current text fallback handler.
func (r *Registry) TextFallback() tele.HandlerFunc {
	return r.textFallback
}

// SetContactHandler sets the handler for messages carrying a shared contact.
func (r *Registry) SetContactHandler(h tele.HandlerFunc) {
	r.contact = h
}

// ContactHandler returns the shared-contact handler.
func (r *Registry) ContactHandler() tele.HandlerFunc {
	return r.contact
}

// commandSetter is the part of *tele.Bot used by SetupCommands.
type commandSetter interface {
	SetCommands(opts ...interface{}) error
}

// SetupCommands publishes visible commands to the Telegram command menu.
func SetupCommands(bot commandSetter, reg *Registry) {
	list := reg.ListCommands(true)
	if len(list) == 0 {
		return
	}
	if err := bot.SetCommands(list); err != nil {
		logger.TWire.LogAttrs(context.Background(), slog.LevelError, "register.commands.set_failed",
			slog.String("err", err.Error()),
		)
	}
}
