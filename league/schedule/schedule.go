/* schedule.go
 * Contains the Season definition and the loaders for the two season input
 * files: config.yml (the six league entries) and schedule.csv (the 30
 * regular-season fixtures). All structural validation happens here at load
 * time so the engines can assume well-formed data.
 */

package schedule

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"h2h-league-bot/league/shared"

	"github.com/go-andiamo/splitter"
	"gopkg.in/yaml.v3"
)

// LeagueSize is fixed; the tiebreak and bracket rules assume six entries
const LeagueSize = 6

// Season owns every Team, Fixture and BracketNode definition for one
// season. It is loaded once and never mutated.
type Season struct {
	Teams    []shared.Team
	Fixtures []shared.Fixture
	Bracket  []shared.BracketNode
}

// yaml shape of config.yml, kept compatible with the original tracker
type configFile struct {
	Managers []struct {
		EntryID  int    `yaml:"entry_id"`
		Name     string `yaml:"name"`
		TeamName string `yaml:"team_name"`
	} `yaml:"managers"`
}

// LoadSeason reads config.yml and schedule.csv, attaches the playoff
// bracket template and validates the whole definition.
// Preconditions: receives paths to the config and schedule files
// Postconditions: returns a validated Season, or an error wrapping
// shared.ErrInvalidSchedule if the definition is structurally broken
func LoadSeason(configPath string, schedulePath string) (*Season, error) {
	teams, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	fixtures, err := loadScheduleCSV(schedulePath)
	if err != nil {
		return nil, err
	}

	season := &Season{
		Teams:    teams,
		Fixtures: fixtures,
		Bracket:  DefaultBracket(DefaultPlayoffStart),
	}

	if err := season.Validate(); err != nil {
		return nil, err
	}
	return season, nil
}

// loadConfig reads the manager list from config.yml. Team display name
// falls back to the manager name when team_name is not set, same as the
// original tracker behaved.
func loadConfig(path string) ([]shared.Team, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg configFile
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var teams []shared.Team
	for _, m := range cfg.Managers {
		name := m.TeamName
		if name == "" {
			name = m.Name
		}
		teams = append(teams, shared.Team{EntryID: m.EntryID, Name: name})
	}
	return teams, nil
}

// loadScheduleCSV reads the regular-season fixture templates. Each line is
// "gw,home,away" with entry ids on both sides; a header line starting with
// "gw" is skipped. We use splitter rather than strings.Split so quoted
// fields survive if anyone ever puts commas in them.
func loadScheduleCSV(path string) ([]shared.Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule: %w", err)
	}

	commaSplitter, err := splitter.NewSplitter(',', splitter.DoubleQuotes)
	if err != nil {
		return nil, fmt.Errorf("failed to build csv splitter: %w", err)
	}

	var fixtures []shared.Fixture
	for i, line := range strings.Split(string(raw), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if i == 0 && strings.HasPrefix(strings.ToLower(line), "gw") {
			continue
		}

		parts, err := commaSplitter.Split(line)
		if err != nil || len(parts) != 3 {
			return nil, fmt.Errorf("%w: bad schedule line %q", shared.ErrInvalidSchedule, line)
		}

		gw, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad gameweek in line %q", shared.ErrInvalidSchedule, line)
		}
		home, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad home entry in line %q", shared.ErrInvalidSchedule, line)
		}
		away, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("%w: bad away entry in line %q", shared.ErrInvalidSchedule, line)
		}

		fixtures = append(fixtures, shared.Fixture{
			Gameweek: gw,
			Home:     shared.TeamRef(home),
			Away:     shared.TeamRef(away),
			Status:   shared.StatusScheduled,
		})
	}
	return fixtures, nil
}

// Validate checks the structural invariants of the season definition:
// exactly six teams with unique ids, five home and five away fixtures per
// team, no duplicate (gw, home, away) triples, and a well-formed bracket
// template that only starts after the regular season ends.
func (s *Season) Validate() error {
	if len(s.Teams) != LeagueSize {
		return fmt.Errorf("%w: expected %d teams but got %d", shared.ErrInvalidSchedule, LeagueSize, len(s.Teams))
	}

	known := make(map[int]bool)
	for _, t := range s.Teams {
		if known[t.EntryID] {
			return fmt.Errorf("%w: duplicate entry id %d", shared.ErrInvalidSchedule, t.EntryID)
		}
		known[t.EntryID] = true
	}

	homeCount := make(map[int]int)
	awayCount := make(map[int]int)
	seen := make(map[string]bool)
	lastRegularGW := 0

	for _, f := range s.Fixtures {
		if f.Home.Kind != shared.SlotTeam || f.Away.Kind != shared.SlotTeam {
			return fmt.Errorf("%w: regular-season fixture in gw %d has a non-team slot", shared.ErrInvalidSchedule, f.Gameweek)
		}
		if !known[f.Home.EntryID] || !known[f.Away.EntryID] {
			return fmt.Errorf("%w: fixture in gw %d references unknown entry", shared.ErrInvalidSchedule, f.Gameweek)
		}
		if f.Home.EntryID == f.Away.EntryID {
			return fmt.Errorf("%w: entry %d plays itself in gw %d", shared.ErrInvalidSchedule, f.Home.EntryID, f.Gameweek)
		}
		if f.Gameweek < 1 {
			return fmt.Errorf("%w: fixture with gameweek %d", shared.ErrInvalidSchedule, f.Gameweek)
		}

		key := fmt.Sprintf("%d-%d-%d", f.Gameweek, f.Home.EntryID, f.Away.EntryID)
		if seen[key] {
			return fmt.Errorf("%w: duplicate fixture %s", shared.ErrInvalidSchedule, key)
		}
		seen[key] = true

		homeCount[f.Home.EntryID]++
		awayCount[f.Away.EntryID]++
		if f.Gameweek > lastRegularGW {
			lastRegularGW = f.Gameweek
		}
	}

	for _, t := range s.Teams {
		if homeCount[t.EntryID] != LeagueSize-1 || awayCount[t.EntryID] != LeagueSize-1 {
			return fmt.Errorf("%w: entry %d has %d home and %d away fixtures, expected %d each",
				shared.ErrInvalidSchedule, t.EntryID, homeCount[t.EntryID], awayCount[t.EntryID], LeagueSize-1)
		}
	}

	return s.validateBracket(lastRegularGW)
}

// validateBracket checks the template's slot refs and leg gameweeks. Node
// output refs may only point at nodes defined earlier in the template, so
// the resolver can walk it in order.
func (s *Season) validateBracket(lastRegularGW int) error {
	defined := make(map[string]bool)
	for _, node := range s.Bracket {
		if node.ID == "" || defined[node.ID] {
			return fmt.Errorf("%w: bracket node id %q missing or duplicated", shared.ErrInvalidSchedule, node.ID)
		}

		for _, ref := range []shared.SlotRef{node.Home, node.Away} {
			switch ref.Kind {
			case shared.SlotSeed:
				if ref.Seed < 1 || ref.Seed > LeagueSize {
					return fmt.Errorf("%w: node %s references seed %d", shared.ErrInvalidSchedule, node.ID, ref.Seed)
				}
			case shared.SlotNodeOutput:
				if !defined[ref.Node] {
					return fmt.Errorf("%w: node %s references %s before it is defined", shared.ErrInvalidSchedule, node.ID, ref.Node)
				}
			case shared.SlotTeam:
				return fmt.Errorf("%w: node %s carries a concrete team in the template", shared.ErrInvalidSchedule, node.ID)
			}
		}

		for _, gw := range node.LegGameweeks {
			if gw <= lastRegularGW {
				return fmt.Errorf("%w: node %s leg in gw %d overlaps the regular season", shared.ErrInvalidSchedule, node.ID, gw)
			}
		}

		defined[node.ID] = true
	}
	return nil
}

// TeamByID looks up a team by entry id
func (s *Season) TeamByID(entryID int) (shared.Team, bool) {
	for _, t := range s.Teams {
		if t.EntryID == entryID {
			return t, true
		}
	}
	return shared.Team{}, false
}

// RegularFixtures returns the regular-season fixture templates for one
// gameweek
func (s *Season) RegularFixtures(gw int) []shared.Fixture {
	var out []shared.Fixture
	for _, f := range s.Fixtures {
		if f.Gameweek == gw {
			out = append(out, f)
		}
	}
	return out
}

// BracketLegs returns the (node, leg) pairs played in one gameweek
func (s *Season) BracketLegs(gw int) []LegSlot {
	var out []LegSlot
	for _, node := range s.Bracket {
		for leg, legGW := range node.LegGameweeks {
			if legGW == gw {
				out = append(out, LegSlot{Node: node, Leg: leg + 1})
			}
		}
	}
	return out
}

// LegSlot names one leg of a bracket node, as scheduled in the calendar
type LegSlot struct {
	Node shared.BracketNode
	Leg  int
}

// LastRegularGameweek returns the highest gameweek in the regular-season
// fixture list
func (s *Season) LastRegularGameweek() int {
	last := 0
	for _, f := range s.Fixtures {
		if f.Gameweek > last {
			last = f.Gameweek
		}
	}
	return last
}

// LastPlayoffGameweek returns the highest gameweek carrying a bracket leg
func (s *Season) LastPlayoffGameweek() int {
	last := 0
	for _, node := range s.Bracket {
		for _, gw := range node.LegGameweeks {
			if gw > last {
				last = gw
			}
		}
	}
	return last
}

// PlayoffStart returns the first gameweek that carries a bracket leg, or 0
// if the template is empty
func (s *Season) PlayoffStart() int {
	start := 0
	for _, node := range s.Bracket {
		for _, gw := range node.LegGameweeks {
			if start == 0 || gw < start {
				start = gw
			}
		}
	}
	return start
}
