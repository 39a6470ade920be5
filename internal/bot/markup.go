package bot

import (
	"github.com/m3rciful/shopbot/core/telegram/keyboard"
	"github.com/m3rciful/shopbot/internal/menu"

	tele "gopkg.in/telebot.v4"
)

// Markup converts a menu into a Telegram reply keyboard.
func Markup(m menu.Menu) *tele.ReplyMarkup {
	if len(m.Rows) == 0 {
		return nil
	}
	rows := make([][]keyboard.Key, 0, len(m.Rows))
	for _, row := range m.Rows {
		keys := make([]keyboard.Key, 0, len(row))
		for _, b := range row {
			keys = append(keys, keyboard.Key{Label: b.Label, RequestContact: b.RequestContact})
		}
		rows = append(rows, keys)
	}
	return keyboard.ReplyKeyboard(rows, keyboard.Layout{
		Resize:    m.Resize,
		OneTime:   m.OneTime,
		Selective: m.Selective,
	})
}
