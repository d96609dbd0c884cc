/* models.go
 * Contains the config and server structs for the web layer
 */

package web

import (
	"h2h-league-bot/league"
)

// Config holds the configuration for the web server
type Config struct {
	Addr   string
	League *league.League
}

// Server is the HTTP server serving the read-only league JSON endpoints
type Server struct {
	league *league.League
}
