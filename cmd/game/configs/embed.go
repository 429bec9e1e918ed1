// Package configs embeds the default game, player and stage configs.
package configs

import "embed"

// FS holds game.json, player.yaml and stages/.
//
//go:embed game.json player.yaml stages
var FS embed.FS
