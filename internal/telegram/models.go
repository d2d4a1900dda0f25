package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

type Update struct {
	ID      int
	Message *Message
}

type Message struct {
	MessageID int
	ChatID    int64
	Username  string
	Text      string
}

func newUpdate(up tgbotapi.Update) Update {
	update := Update{ID: up.UpdateID}
	if up.Message == nil {
		return update
	}

	update.Message = &Message{
		MessageID: up.Message.MessageID,
		Text:      up.Message.Text,
	}
	if up.Message.Chat != nil {
		update.Message.ChatID = up.Message.Chat.ID
	}
	if up.Message.From != nil {
		update.Message.Username = up.Message.From.UserName
	}
	return update
}
