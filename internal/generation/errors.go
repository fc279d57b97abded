package generation

import "errors"

// Common errors returned by generation collaborators.
var (
	// ErrNetwork is returned for transport failures and non-2xx responses.
	ErrNetwork = errors.New("network failure calling generation endpoint")

	// ErrInvalidResponse is returned when a response cannot be parsed or is
	// missing expected fields.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrEmptyVocabulary is returned when generation is attempted with no
	// vocabulary words available. No network call is made in that case.
	ErrEmptyVocabulary = errors.New("no vocabulary words available")

	// ErrGenerationFailed is returned when generation fails for any other
	// reason.
	ErrGenerationFailed = errors.New("generation failed")

	// ErrInvalidConfig is returned when a collaborator is misconfigured.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
