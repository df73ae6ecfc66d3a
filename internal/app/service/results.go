package service

// DeleteResult mirrors the delete acknowledgement shape the API has always
// returned. A zero count is a valid, idempotent outcome, not an error.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// MessageResponse is the bare {message} acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}
