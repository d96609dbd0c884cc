/* bot.go
 * Contains the Bot struct and command routing. The bot is a thin caller of
 * the league package: every command formats the output of one league
 * operation and sends it back to the channel.
 */

package bot

import (
	"fmt"
	"strings"

	"h2h-league-bot/league"
)

type Bot struct {
	BotToken  string
	LeaguePtr *league.League
}

// NewBot creates a Bot over the league API. Requires a Discord bot token.
func NewBot(botToken string, leaguePtr *league.League) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if leaguePtr == nil {
		return nil, fmt.Errorf("league is required but none was provided")
	}

	return &Bot{
		BotToken:  botToken,
		LeaguePtr: leaguePtr,
	}, nil
}

// startsWith reports whether the message begins with the given command
func startsWith(content string, command string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), command)
}
