package sandbox

// Names of the capabilities installed into the global scope of a program.
const (
	GlobalStore      = "store"
	GlobalComponents = "components"
	GlobalKeyboard   = "keyboard"
	GlobalMediaTime  = "media_time"
	GlobalWatchWhen  = "watch_when"
	GlobalTrace      = "trace"
)

var Globals = []string{
	GlobalStore,
	GlobalComponents,
	GlobalKeyboard,
	GlobalMediaTime,
	GlobalWatchWhen,
	GlobalTrace,
}
