package application

import "errors"

// Caller-visible failures of the KYC workflow. Handlers match these with
// errors.Is; everything else is an internal/dependency failure surfaced
// verbatim.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrAlreadySubmitted = errors.New("kyc already submitted")
	ErrKycNotFound      = errors.New("kyc not found")
	ErrAlreadyApproved  = errors.New("kyc already approved")
	ErrAlreadyRejected  = errors.New("kyc already rejected")
	ErrInvalidRole      = errors.New("invalid role type")
	ErrMissingDocument  = errors.New("missing required document")
	ErrUploadFailed     = errors.New("document upload failed")
)
