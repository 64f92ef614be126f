package utils

// Codes returned in the "code" field of middleware rejections.
const (
	ErrorTokenAuthFail    = 10001
	ErrorPermissionDenied = 10002
)
