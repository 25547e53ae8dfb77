package game

// ViewerOptions configures the windowed viewer.
type ViewerOptions struct {
	Battle Options

	// Setup is the initial battle; SetupPath, if set, is where the editor saves.
	Setup     Setup
	SetupPath string

	// StartInEditor opens the placement editor instead of fighting right away.
	StartInEditor bool

	// OnFinish is called once for every battle that reaches its end.
	OnFinish func(*Battle)
}
