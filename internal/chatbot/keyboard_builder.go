package chatbot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// KeyboardBuilder creates the reply keyboards the bot sends
type KeyboardBuilder struct{}

// NewKeyboardBuilder creates a new KeyboardBuilder instance
func NewKeyboardBuilder() *KeyboardBuilder {
	return &KeyboardBuilder{}
}

// BuildCalendarKeyboard creates the persistent keyboard with the button
// that opens the calendar web app
func (kb *KeyboardBuilder) BuildCalendarKeyboard(calendarURL string) tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.KeyboardButton{
				Text:   "Open Calendar",
				WebApp: &tgbotapi.WebAppInfo{URL: calendarURL},
			},
		),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}
