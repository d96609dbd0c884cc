/* handlers.go
 * Contains testable handler methods that accept a DiscordSession interface
 */

package bot

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"h2h-league-bot/league"
	"h2h-league-bot/league/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/go-andiamo/splitter"
)

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("H2H League Bot\n")
	res.WriteString("`$table`: shows the current regular-season standings with seeds\n")
	res.WriteString("`$fixtures [gw]`: shows the fixtures for a gameweek (defaults to gameweek 1)\n")
	res.WriteString("`$bracket`: shows the playoff bracket state once the regular season is done\n")
	res.WriteString("`$team <name>`: shows one team's standings row. There is fuzzy matching on names; names with spaces need to be encased in \" (e.g. \"Harry's Heroes\")\n")
	session.ChannelMessageSend(message.ChannelID, res.String())
}

// tableHandler handles the $table command
func (b *Bot) tableHandler(session DiscordSession, message *discordgo.MessageCreate) {
	rows, err := b.LeaguePtr.Standings(shared.ModeLive)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the standings")
		return
	}
	session.ChannelMessageSend(message.ChannelID, league.FormatStandings(rows))
}

// fixturesHandler handles the $fixtures command. An optional second word
// selects the gameweek.
func (b *Bot) fixturesHandler(session DiscordSession, message *discordgo.MessageCreate) {
	gw := 1
	fields := strings.Fields(message.Content)
	if len(fields) > 1 {
		parsed, err := strconv.Atoi(fields[1])
		if err != nil {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("%q is not a gameweek number", fields[1]))
			return
		}
		gw = parsed
	}
	session.ChannelMessageSend(message.ChannelID, b.LeaguePtr.FormatFixtures(gw))
}

// bracketHandler handles the $bracket command
func (b *Bot) bracketHandler(session DiscordSession, message *discordgo.MessageCreate) {
	state, err := b.LeaguePtr.Bracket()
	if err != nil {
		if errors.Is(err, shared.ErrIncompleteSeason) {
			session.ChannelMessageSend(message.ChannelID, "The regular season is still running, no bracket yet")
			return
		}
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the bracket")
		return
	}
	session.ChannelMessageSend(message.ChannelID, league.FormatBracket(state))
}

// teamHandler handles the $team command. The name may be quoted so we use
// splitter rather than strings.Fields, which lets team names contain
// spaces (e.g. "Harry's Heroes") and still arrive as one argument.
func (b *Bot) teamHandler(session DiscordSession, message *discordgo.MessageCreate) {
	spaceSplitter, _ := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	args, _ := spaceSplitter.Split(message.Content)
	if len(args) < 2 {
		session.ChannelMessageSend(message.ChannelID, "Usage: $team <name>")
		return
	}
	name := strings.Trim(strings.Join(args[1:], " "), "\"")

	team, err := b.LeaguePtr.FindTeam(name)
	if err != nil {
		session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No team matching %q", name))
		return
	}

	rows, err := b.LeaguePtr.Standings(shared.ModeLive)
	if err != nil {
		log.Println(err)
		session.ChannelMessageSend(message.ChannelID, "An error occurred getting the standings")
		return
	}
	for _, row := range rows {
		if row.EntryID == team.EntryID {
			session.ChannelMessageSend(message.ChannelID, fmt.Sprintf(
				"%s: seed %d, %d pts, W%d D%d L%d, PF %d, PA %d",
				row.Name, row.Seed, row.LeaguePoints, row.Wins, row.Draws, row.Losses,
				row.PointsFor, row.PointsAgainst))
			return
		}
	}
	session.ChannelMessageSend(message.ChannelID, fmt.Sprintf("No standings row for %q", name))
}

// newMessageHandler routes messages to the appropriate handler.
// botUserID is the bot's user ID to prevent self-responses.
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author.ID == botUserID {
		return
	}

	switch {
	case startsWith(message.Content, "$help"):
		b.helpMessageHandler(session, message)

	case startsWith(message.Content, "$table"):
		b.tableHandler(session, message)

	case startsWith(message.Content, "$fixtures"):
		b.fixturesHandler(session, message)

	case startsWith(message.Content, "$bracket"):
		b.bracketHandler(session, message)

	case startsWith(message.Content, "$team"):
		b.teamHandler(session, message)
	}
}
