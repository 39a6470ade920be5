package middleware

import (
	"strings"

	coreconfig "github.com/m3rciful/shopbot/core/config"

	tele "gopkg.in/telebot.v4"
)

const updateOther = "other"

// UpdateKind classifies an update as contact, command, message or other.
func UpdateKind(c tele.Context) string {
	upd := c.Update()
	msg := upd.Message
	if msg == nil {
		return updateOther
	}
	switch {
	case msg.Contact != nil:
		return coreconfig.UpdateContact
	case strings.HasPrefix(msg.Text, "/"):
		return coreconfig.UpdateCommand
	default:
		return coreconfig.UpdateMessage
	}
}
