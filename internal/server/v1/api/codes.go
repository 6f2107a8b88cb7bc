package api

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error
	CodeNotFound       = "E_NOT_FOUND"       // the referenced resource does not exist

	// Auth errors
	CodeAuthRequired = "E_AUTH_REQUIRED" // no usable service token

	// Drive and store errors
	CodeDriveUnavailable = "E_DRIVE_UNAVAILABLE" // the drive service could not be reached
	CodeStoreUnavailable = "E_STORE_UNAVAILABLE" // the document store could not be reached

	// Selection errors
	CodeNotFile        = "E_NOT_FILE"        // the referenced item is not a file
	CodeNotFolder      = "E_NOT_FOLDER"      // the referenced item is not a folder
	CodeEmptySelection = "E_EMPTY_SELECTION" // a sync was requested with nothing selected

	// Job errors
	CodeJobRunning = "E_JOB_RUNNING" // another sync job is already in flight
)
