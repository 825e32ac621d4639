package catch

import "context"

// Stand-ins for optional collaborators that were not provided.

type nopDisplay struct{}

func (nopDisplay) SetScore(int)    {}
func (nopDisplay) SetTimeLeft(int) {}
func (nopDisplay) ShowPaused(bool) {}

type nopAudio struct{}

func (nopAudio) PlayBackground(string) {}
func (nopAudio) PlayEffect(string)     {}
func (nopAudio) PauseBackground()      {}
func (nopAudio) ResumeBackground()     {}
func (nopAudio) StopAll()              {}

type nopNavigator struct{}

func (nopNavigator) NavigateTo(string) {}

type nopStore struct{}

func (nopStore) UpdateSession(context.Context, map[string]any) error    { return nil }
func (nopStore) SubmitScore(context.Context, int, map[string]any) error { return nil }
