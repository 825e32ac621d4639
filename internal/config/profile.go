package config

// NarrowWidth is the viewport width below which the touch profile is used.
const NarrowWidth = 768

// Probe describes the host device, as sampled once when a game is set up.
type Probe struct {
	Touch bool    // Host reports a touch screen
	Width float64 // Viewport width in logical units
}

// ProfileName picks the profile for a probed device.
func ProfileName(p Probe) string {
	if p.Touch || (p.Width > 0 && p.Width < NarrowWidth) {
		return ProfileTouch
	}
	return ProfileDesktop
}

// SelectProfile returns the profile for p. Missing profiles fall back to the
// desktop profile, then to DefaultProfile.
func (c CatchConfig) SelectProfile(p Probe) Profile {
	if prof, ok := c.Profiles[ProfileName(p)]; ok {
		return prof
	}
	if prof, ok := c.Profiles[ProfileDesktop]; ok {
		return prof
	}
	return DefaultProfile()
}
