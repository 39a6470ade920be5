package keyboard

import tele "gopkg.in/telebot.v4"

// Key is a single reply-keyboard button.
type Key struct {
	Label          string
	RequestContact bool
}

// Layout carries the reply-keyboard display flags.
type Layout struct {
	Resize    bool
	OneTime   bool
	Selective bool
}

// ReplyKeyboard builds a reply keyboard from rows of keys, preserving their order.
// Keys with RequestContact ask the client to share the user's phone number.
func ReplyKeyboard(rows [][]Key, layout Layout) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{
		ResizeKeyboard:  layout.Resize,
		OneTimeKeyboard: layout.OneTime,
		Selective:       layout.Selective,
	}
	keyboard := make([]tele.Row, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.Btn, 0, len(row))
		for _, key := range row {
			if key.RequestContact {
				buttons = append(buttons, markup.Contact(key.Label))
				continue
			}
			buttons = append(buttons, markup.Text(key.Label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}
