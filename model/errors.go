package model

import (
	"fmt"
)

// Hard validation failures. Everything else found in source documents is
// either defaulted or skipped.

// TitleError is returned when title text is missing, empty or has no words
// left after normalization.
type TitleError struct {
	Element string // tag of the element holding the title
	Text    string // raw title text as found
	Message string
}

func (e *TitleError) Error() string {
	if e.Element == "" {
		return fmt.Sprintf("bad title %q: %s", e.Text, e.Message)
	}
	return fmt.Sprintf("bad title %q in <%s>: %s", e.Text, e.Element, e.Message)
}

// ReleaseTypeError is returned when release or medium element does not carry
// recognizable type.
type ReleaseTypeError struct {
	Element string
	Message string
}

func (e *ReleaseTypeError) Error() string {
	return fmt.Sprintf("bad type in <%s>: %s", e.Element, e.Message)
}

// ContentBuildError is returned when content entity (movie, album, song,
// media) could not be assembled. Cause, when present, is available through
// errors.Unwrap.
type ContentBuildError struct {
	Element string
	Message string
	Cause   error
}

func (e *ContentBuildError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("unable to build <%s>: %s", e.Element, e.Message)
	}
	return fmt.Sprintf("unable to build <%s>: %s: %v", e.Element, e.Message, e.Cause)
}

func (e *ContentBuildError) Unwrap() error {
	return e.Cause
}
