package serial

import (
	"errors"
)

var (
	ErrRegister = errors.New("register error")

	// ErrReconstruct classifies tagged-object reconstruction failures.
	// These never escape the bridge: the raw mapping is returned
	// instead and the failure is logged.
	ErrReconstruct = errors.New("reconstruct error")
)
