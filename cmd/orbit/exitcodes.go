package main

const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (store failure, invalid arguments)
	ExitConfigError = 2 // Configuration error (missing settings, bad credentials)
	ExitDataError   = 3 // Data error (malformed input JSON, validation failure)
)
