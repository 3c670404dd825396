package physics

import (
	"errors"
	"fmt"
)

// ForceMode selects how AddForce and AddTorque interpret their vector.
type ForceMode int

const (
	// ForceModeForce accumulates into the buffer consumed by the next integration.
	ForceModeForce ForceMode = iota
	// ForceModeImpulse changes velocity (or angular momentum) immediately, scaled by 1/mass.
	ForceModeImpulse
	// ForceModeVelocityChange changes velocity (or angular momentum) immediately, ignoring mass.
	ForceModeVelocityChange
	// ForceModeAcceleration is recognised but not implemented.
	ForceModeAcceleration
)

// ErrUnsupportedForceMode is returned for a force mode the body cannot apply.
var ErrUnsupportedForceMode = errors.New("force mode not implemented")

func (m ForceMode) String() string {
	switch m {
	case ForceModeForce:
		return "Force"
	case ForceModeImpulse:
		return "Impulse"
	case ForceModeVelocityChange:
		return "VelocityChange"
	case ForceModeAcceleration:
		return "Acceleration"
	default:
		return fmt.Sprintf("ForceMode(%d)", int(m))
	}
}
