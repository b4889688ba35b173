package editor

import "github.com/gsarma/algodojo/internal/judge"

// Phase is where a session is in its run lifecycle.
type Phase int

const (
	Idle Phase = iota
	Running
	Settled
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// Session is the editor state for one problem. It is a value: every
// transition returns a new Session and leaves the receiver untouched.
type Session struct {
	Slug       string
	Language   judge.Language
	Source     string
	Phase      Phase
	RunID      uint64
	Result     *judge.Result
	OutputOpen bool
}

// Edit replaces the source. A settled session goes back to idle; a
// running one keeps waiting for its result.
func (s Session) Edit(source string) Session {
	s.Source = source
	if s.Phase == Settled {
		s.Phase = Idle
	}
	return s
}

// SwitchLanguage changes the active language and the visible source.
func (s Session) SwitchLanguage(lang judge.Language, source string) Session {
	s.Language = lang
	s.Source = source
	if s.Phase == Settled {
		s.Phase = Idle
	}
	return s
}

// BeginRun starts a new run. The previous result is cleared, the output
// panel opens and any run still in flight is superseded.
func (s Session) BeginRun() Session {
	s.RunID++
	s.Phase = Running
	s.Result = nil
	s.OutputOpen = true
	return s
}

// Settle applies res if runID is the latest run. The bool reports whether
// the result was applied; stale results leave the session unchanged.
func (s Session) Settle(runID uint64, res *judge.Result) (Session, bool) {
	if s.Phase != Running || runID != s.RunID {
		return s, false
	}
	s.Phase = Settled
	s.Result = res
	return s, true
}

// ToggleOutput flips the output panel.
func (s Session) ToggleOutput() Session {
	s.OutputOpen = !s.OutputOpen
	return s
}
