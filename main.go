/* main.go
 * The entry point for the league tracker.
 * Usage: go run . -gw=<n> -mode=<live|final> [-serve=true] [-bot=true]
 * A normal run fetches the gameweek's scores, stores the results and
 * publishes a fresh snapshot. With -serve or -bot it instead starts the
 * HTTP server or the Discord bot over the stored data.
 */

package main

import (
	"context"
	"flag"
	"os"

	"h2h-league-bot/bot"
	"h2h-league-bot/league"
	"h2h-league-bot/league/external"
	"h2h-league-bot/league/schedule"
	"h2h-league-bot/league/shared"
	"h2h-league-bot/league/store"
	"h2h-league-bot/web"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, relying on the environment")
	}

	// Flags
	gwPtr := flag.Int("gw", 1, "Gameweek number to process")
	modePtr := flag.String("mode", "final", "Use live or final points")
	servePtr := flag.String("serve", "false", "Start the HTTP server instead of updating: takes true or false")
	botPtr := flag.String("bot", "false", "Start the Discord bot instead of updating: takes true or false")
	configPtr := flag.String("config", "config.yml", "Path to the league config file")
	schedulePtr := flag.String("schedule", "schedule.csv", "Path to the regular-season schedule file")
	addrPtr := flag.String("addr", ":8765", "Listen address for the HTTP server")

	flag.Parse()

	mode := shared.Mode(*modePtr)
	if mode != shared.ModeLive && mode != shared.ModeFinal {
		logger.Fatalf("invalid mode %q, expected live or final", *modePtr)
	}

	season, err := schedule.LoadSeason(*configPtr, *schedulePtr)
	if err != nil {
		logger.WithError(err).Fatal("failed to load season definition")
	}

	st, err := store.NewStore(os.Getenv("LEAGUE_DB"), os.Getenv("MONGO_URI"), os.Getenv("SEASON"))
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize store")
	}
	defer func() {
		if err := st.GetClient().Disconnect(context.TODO()); err != nil {
			logger.WithError(err).Error("failed to disconnect store")
		}
	}()

	provider := external.NewHTTPClient(logger)

	lg, err := league.NewLeague(season, st, provider, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to initialize league")
	}

	serve, err := convertStrToBool(*servePtr)
	if err != nil {
		logger.Fatal("invalid \"serve\" flag, should be true or false")
	}
	runBot, err := convertStrToBool(*botPtr)
	if err != nil {
		logger.Fatal("invalid \"bot\" flag, should be true or false")
	}

	switch {
	case serve:
		if err := web.Start(web.Config{Addr: *addrPtr, League: lg}); err != nil {
			logger.WithError(err).Fatal("web server failed")
		}

	case runBot:
		b, err := bot.NewBot(os.Getenv("DISCORD_TOKEN"), lg)
		if err != nil {
			logger.WithError(err).Fatal("failed to initialize bot")
		}
		if err := b.Run(); err != nil {
			logger.WithError(err).Fatal("bot failed")
		}

	default:
		// Periodic-job path: any typed failure here means the data is not
		// ready yet, so we log it and leave the previously published
		// snapshot untouched.
		if err := lg.UpdateGameweek(*gwPtr, mode); err != nil {
			logger.WithError(err).WithField("gw", *gwPtr).Warn("skipping update this cycle")
			return
		}
		snap, err := lg.PublishSnapshot(*gwPtr, mode)
		if err != nil {
			logger.WithError(err).WithField("gw", *gwPtr).Warn("skipping publish this cycle")
			return
		}
		logger.WithFields(logrus.Fields{"gw": snap.Gameweek, "mode": snap.Mode}).Info("snapshot published")
	}
}
