package game

import "errors"

var (
	ErrInvalidSpeciesOrBreed = errors.New("invalid species or breed")
	ErrInsufficientResources = errors.New("insufficient funds or items")
	ErrUnknownBiome          = errors.New("unknown biome")
	ErrUnknownLocation       = errors.New("unknown capture location")
	ErrUnknownStage          = errors.New("unknown maturity stage")
	ErrBiomeInactive         = errors.New("biome is not currently active")
	ErrPremiumOnly           = errors.New("premium membership required")
	ErrTooTired              = errors.New("animal is too tired to train")
	ErrUnknownCategory       = errors.New("unknown event category or discipline")
	ErrEventNotReady         = errors.New("event is not ready")
	ErrRegistrationClosed    = errors.New("registration is closed for this event")
	ErrRequirementsNotMet    = errors.New("animal does not meet event requirements")
	ErrAlreadyRegistered     = errors.New("already registered for this event")

	// ErrIncompatibleBreedingPair is matched by every IncompatibleBreedingError.
	ErrIncompatibleBreedingPair = errors.New("incompatible breeding pair")
)

// IncompatibleBreedingError explains why two animals cannot be bred.
type IncompatibleBreedingError struct {
	Reason string
}

func (e *IncompatibleBreedingError) Error() string {
	return "incompatible breeding pair: " + e.Reason
}

// Is makes errors.Is(err, ErrIncompatibleBreedingPair) hold.
func (e *IncompatibleBreedingError) Is(target error) bool {
	return target == ErrIncompatibleBreedingPair
}

func incompatible(reason string) error {
	return &IncompatibleBreedingError{Reason: reason}
}
