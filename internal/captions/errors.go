package captions

import "errors"

var (
	// ErrNoScript is returned when the script is empty or only whitespace.
	ErrNoScript = errors.New("no script to caption")

	// ErrInvalidDuration is returned when the audio duration is not a positive
	// finite number of seconds.
	ErrInvalidDuration = errors.New("invalid audio duration")
)
