// Package command provides the fire-control console command registry and parser.
package command

// Categories for organizing commands.
const (
	CategoryWeapons = "weapons"
	CategorySystem  = "system"
)

// Handler identifiers mapping commands to console handlers.
const (
	HandlerFire   = "fire"
	HandlerStatus = "status"
	HandlerReload = "reload"
	HandlerLog    = "log"
	HandlerHelp   = "help"
	HandlerQuit   = "quit"
)

// Command defines an operator-invocable console command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument syntax, e.g. "fire [single|all]".
	Usage string
	// Help is the short help text displayed to operators.
	Help string
	// Category groups the command.
	Category string
	// Handler selects the console handler.
	Handler string
}

// BuiltinCommands returns all built-in console commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "fire", Aliases: []string{"f"}, Usage: "fire [single|all]", Help: "Fire one torpedo, or every loaded torpedo", Category: CategoryWeapons, Handler: HandlerFire},
		{Name: "status", Aliases: []string{"st"}, Usage: "status", Help: "Show torpedo store levels", Category: CategoryWeapons, Handler: HandlerStatus},
		{Name: "reload", Aliases: []string{"r"}, Usage: "reload", Help: "Reload both torpedo stores", Category: CategoryWeapons, Handler: HandlerReload},
		{Name: "log", Aliases: []string{"l"}, Usage: "log [n]", Help: "Show the most recent fire journal entries", Category: CategoryWeapons, Handler: HandlerLog},
		{Name: "help", Aliases: []string{"?"}, Usage: "help", Help: "List commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"exit", "q"}, Usage: "quit", Help: "Close the console", Category: CategorySystem, Handler: HandlerQuit},
	}
}
