package actions

// SpeakControl is the speech-playback toggle attached to a rendered
// assistant message: Idle -> Speaking -> Idle. Activation while idle starts
// playback; activation while speaking cancels it. It is a toggle, not a
// queue.
type SpeakControl struct {
	speaker  Speaker
	speaking bool
}

// NewSpeakControl creates an idle speak control over the given capability.
func NewSpeakControl(speaker Speaker) *SpeakControl {
	return &SpeakControl{speaker: speaker}
}

// Toggle flips the control. When playback starts, the returned channel
// closes on completion and the caller should then call Finished; when
// playback is cancelled the channel is nil.
func (s *SpeakControl) Toggle(text string) (<-chan struct{}, error) {
	if s.speaking {
		s.speaker.Cancel()
		s.speaking = false
		return nil, nil
	}

	done, err := s.speaker.Speak(text)
	if err != nil {
		return nil, err
	}
	s.speaking = true
	return done, nil
}

// Finished records natural completion of playback.
func (s *SpeakControl) Finished() {
	s.speaking = false
}

// Speaking reports whether playback is active.
func (s *SpeakControl) Speaking() bool {
	return s.speaking
}
