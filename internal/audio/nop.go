package audio

// Interface is the full player surface, including mute control.
type Interface interface {
	PlayBackground(name string)
	PlayEffect(name string)
	PauseBackground()
	ResumeBackground()
	StopAll()
	ToggleMute() bool
	Muted() bool
}

var (
	_ Interface = (*Player)(nil)
	_ Interface = Nop{}
)

// Nop is a silent player for hosts without audio output.
type Nop struct{}

func (Nop) PlayBackground(string) {}
func (Nop) PlayEffect(string)     {}
func (Nop) PauseBackground()      {}
func (Nop) ResumeBackground()     {}
func (Nop) StopAll()              {}
func (Nop) ToggleMute() bool      { return false }
func (Nop) Muted() bool           { return false }
