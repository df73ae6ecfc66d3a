package handler

import (
	"net/http"

	"github.com/freelancerjoynal/avtoskola-varketilshi-backend/internal/common"
	"github.com/sirupsen/logrus"
)

// respondError writes the error with its mapped status. Unexpected (500)
// errors are logged and replaced with the route's generic message so store
// internals never reach the client.
func respondError(w http.ResponseWriter, err error, fallback string) {
	status := common.HTTPStatusFromError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logrus.Error(err)
		message = fallback
	}
	common.RespondWithError(w, status, message)
}
