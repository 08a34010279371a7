package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe     = "" // web
	IconVersion   = "" // tag
	IconGitBranch = "" // git branch
	IconCalendar  = "" // calendar
	IconGithub    = "" // github
	IconGo        = "" // go gopher
	IconArrow     = "" // arrow right

	IconDoctor  = "" // stethoscope
	IconCheck   = "" // check
	IconX       = "" // x
	IconWarning = "" // warning
	IconInfo    = "" // info
	IconPackage = "" // archive/package

	IconConfig   = "" // config
	IconDatabase = "" // database
	IconLogs     = "" // file-text
	IconClock    = "" // clock
	IconPlay     = "" // play
	IconStop     = "" // stop
	IconRestore  = "" // rotate-left
	IconBlock    = "" // ban
)
