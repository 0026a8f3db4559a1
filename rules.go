//go:build ruleguard
// +build ruleguard

package gorules

import (
	logfatal "github.com/ennyjfrick/ruleguard-logfatal"
	"github.com/quasilyte/go-ruleguard/dsl"
)

func init() {
	dsl.ImportRules("logfatal", logfatal.Bundle)
}
