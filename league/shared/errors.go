/* errors.go
 * Sentinel errors shared across the league packages. Callers match these
 * with errors.Is and decide whether to retry, skip the cycle or fail hard.
 */

package shared

import "errors"

var (
	// ErrDataIncomplete is returned when final-mode standings consult a
	// fixture that is not yet final
	ErrDataIncomplete = errors.New("data incomplete")

	// ErrIncompleteSeason is returned when seeding is requested before
	// every regular-season fixture is final
	ErrIncompleteSeason = errors.New("regular season incomplete")

	// ErrUnresolvedPrerequisite is returned when a bracket node outcome is
	// requested but one of its input nodes has not resolved yet
	ErrUnresolvedPrerequisite = errors.New("unresolved prerequisite node")

	// ErrInvalidSeedCount is returned when the bracket resolver is given
	// anything other than exactly six seeds
	ErrInvalidSeedCount = errors.New("invalid seed count")

	// ErrInvalidSchedule is returned for structural problems in the season
	// definition, surfaced at load time
	ErrInvalidSchedule = errors.New("invalid schedule definition")

	// ErrScoresUnavailable is returned when the score provider has no data
	// for a gameweek. It must never be treated as zero points.
	ErrScoresUnavailable = errors.New("gameweek scores unavailable")
)
