// Package all imports all subcommands so that they register themselves to cmd.RootCmd.
package all

import (
	_ "github.com/sagan/respimg/cmd/configcmd"
	_ "github.com/sagan/respimg/cmd/list"
)
