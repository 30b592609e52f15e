package eventmodels

import (
	"fmt"
	"strings"
)

type OptionType string

const (
	Call OptionType = "call"
	Put  OptionType = "put"
)

func (o OptionType) Validate() error {
	if o != Call && o != Put {
		return fmt.Errorf("OptionType: Validate: %w: %s", ErrInvalidOptionType, o)
	}

	return nil
}

func (o OptionType) IsCall() bool {
	return o == Call
}

// Code returns the single letter used in OCC symbols.
func (o OptionType) Code() string {
	if o == Put {
		return "P"
	}

	return "C"
}

// ParseOptionType accepts "call", "put", "c", "p" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "call":
		return Call, nil
	case "p", "put":
		return Put, nil
	}

	return "", fmt.Errorf("ParseOptionType: %w: %q", ErrInvalidOptionType, s)
}
