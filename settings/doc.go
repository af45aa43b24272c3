// Package settings describes the host-rendered settings UI and reads the
// flat values the host sends back.
//
// A Page groups Grids, a Grid groups Fields. The host renders them and later
// passes the user's choices to the plugin as Values keyed by Field.Key.
package settings
