package main

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/go-telegram/ui/keyboard/inline"
	"go.uber.org/zap"
)

// registerHandlers binds the state machine to the bot. Everything except
// /start goes through the default handler.
func (a *App) registerHandlers(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "start", bot.MatchTypeCommand, a.startHandler)
}

// startHandler greets the user and offers the start-search button.
func (a *App) startHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	kb := inline.New(b, inline.NoDeleteAfterClick()).
		Row().
		Button(msgStartButton, []byte("START_SEARCH"), a.onStartSearch)

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        msgWelcome,
		ReplyMarkup: kb,
	})
	if err != nil {
		a.log.Error("could not send welcome message", zap.Error(err))
	}
}

func (a *App) onStartSearch(ctx context.Context, b *bot.Bot, mes models.MaybeInaccessibleMessage, _ []byte) {
	var chatID int64
	if mes.Message != nil {
		chatID = mes.Message.Chat.ID
	}
	replies := a.ProcessAction(ctx, chatID, action{kind: actionStartSearch})
	a.send(ctx, b, chatID, 0, replies)
}

// defaultHandler routes every non-command update: callback queries carry
// selection actions, plain messages carry free text.
func (a *App) defaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	switch {
	case update.CallbackQuery != nil:
		a.callbackHandler(ctx, b, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		a.textHandler(ctx, b, update.Message)
	}
}

func (a *App) textHandler(ctx context.Context, b *bot.Bot, message *models.Message) {
	chatID := message.Chat.ID
	a.log.Debug("text message", zap.Int64("chat_id", chatID))

	replies := a.ProcessText(ctx, chatID, message.Text)
	a.send(ctx, b, chatID, 0, replies)
}

func (a *App) callbackHandler(ctx context.Context, b *bot.Bot, cq *models.CallbackQuery) {
	// stop the client-side spinner regardless of what the data turns out to be
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: cq.ID})
	if err != nil {
		a.log.Debug("could not answer callback query", zap.Error(err))
	}

	act, ok := parseAction(cq.Data)
	if !ok {
		a.log.Warn("unparseable callback data", zap.String("data", cq.Data))
		return
	}
	if act.kind == actionIgnore {
		return
	}

	var chatID int64
	var messageID int
	if cq.Message.Message != nil {
		chatID = cq.Message.Message.Chat.ID
		messageID = cq.Message.Message.ID
	}

	replies := a.ProcessAction(ctx, chatID, act)
	a.send(ctx, b, chatID, messageID, replies)
}

// send delivers replies in order. Calendar edits target messageID; when the
// transport rejects the edit the user is told to retry and the handler
// carries on.
func (a *App) send(ctx context.Context, b *bot.Bot, chatID int64, messageID int, replies []reply) {
	for _, r := range replies {
		if r.edit != nil {
			_, err := b.EditMessageReplyMarkup(ctx, &bot.EditMessageReplyMarkupParams{
				ChatID:      chatID,
				MessageID:   messageID,
				ReplyMarkup: r.edit,
			})
			if err != nil {
				a.log.Warn("could not update calendar markup",
					zap.Int64("chat_id", chatID), zap.Error(err))
				a.sendText(ctx, b, chatID, msgCalendarEditFailed, nil)
			}
			continue
		}

		a.sendText(ctx, b, chatID, r.text, r.markup)
	}
}

func (a *App) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: markup,
	})
	if err != nil {
		a.log.Error("could not send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
