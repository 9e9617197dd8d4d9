package feed

import "fmt"

// Per-item validation failures. Each carries the path of the offending
// item and aborts the whole generation.

type MissingAudioError struct {
	Path string
}

func (e *MissingAudioError) Error() string {
	return fmt.Sprintf("item '%s' has no audio attachment", e.Path)
}

type MissingAudioDurationError struct {
	Path string
}

func (e *MissingAudioDurationError) Error() string {
	return fmt.Sprintf("audio for item '%s' has no duration", e.Path)
}

type MissingAudioSizeError struct {
	Path string
}

func (e *MissingAudioSizeError) Error() string {
	return fmt.Sprintf("audio for item '%s' has no byte size", e.Path)
}
