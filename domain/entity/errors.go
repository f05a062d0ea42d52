package entity

import "errors"

var (
	ErrInvalidSignature    = errors.New("invalid request signature")
	ErrStaleRequest        = errors.New("request timestamp outside replay window")
	ErrMisconfiguredSecret = errors.New("signing secret is not configured")
	ErrMalformedPayload    = errors.New("payload is not well-formed")
	ErrUnknownAction       = errors.New("unknown action")
	ErrStoreUnavailable    = errors.New("timeline store unavailable")
)
