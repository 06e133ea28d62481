package notify

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/fortuna/gridiron/internal/models"
)

// Telegram pushes strong-play alerts to a chat. Alerts fire only for
// STRONG recommendations whose value rating clears the configured edge,
// and delivery failures are logged, never surfaced to the request path.
type Telegram struct {
	bot       *tgbotapi.BotAPI
	chatID    int64
	alertEdge float64
}

// NewTelegram creates an alert sender and verifies the bot token
func NewTelegram(token string, chatID int64, alertEdge float64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	log.Printf("[notify] ✓ telegram bot authorized as @%s", bot.Self.UserName)
	return &Telegram{
		bot:       bot,
		chatID:    chatID,
		alertEdge: alertEdge,
	}, nil
}

// AlertStrongPlays sends one message covering every qualifying play in
// the batch. No qualifying plays means no message.
func (t *Telegram) AlertStrongPlays(predictions []models.Prediction) {
	var lines []string
	for _, p := range predictions {
		if !strongPlay(&p, t.alertEdge) {
			continue
		}
		lines = append(lines, fmt.Sprintf(
			"%s\n%s | value %.1f%% | stake %.1f%% | %s confidence",
			p.Matchup, p.Recommendation, p.ValueRating, p.StakeFraction*100, p.Confidence,
		))
	}
	if len(lines) == 0 {
		return
	}

	text := fmt.Sprintf("🏈 Strong plays, week %d:\n\n%s", predictions[0].Week, strings.Join(lines, "\n\n"))
	msg := tgbotapi.NewMessage(t.chatID, text)

	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[notify] telegram send failed: %v", err)
		return
	}
	log.Printf("[notify] ✓ alerted %d strong plays", len(lines))
}

func strongPlay(p *models.Prediction, alertEdge float64) bool {
	strong := p.Recommendation == models.RecommendStrongHome ||
		p.Recommendation == models.RecommendStrongAway
	return strong && p.ValueRating >= alertEdge
}
