package uploads

import "errors"

// Validation errors returned by Gateway.Validate. Validation fails closed:
// any asset that cannot be proven acceptable is rejected before a single
// byte leaves the machine.
var (
	ErrAssetMissing      = errors.New("asset file not found")
	ErrUnsupportedFormat = errors.New("unsupported asset format")
	ErrAssetTooLarge     = errors.New("asset exceeds maximum size")
)
