package handlers

import (
	"context"
	"errors"
	"net/http"

	"calboard/internal/database"
	"calboard/pkg/utils"
)

// storageContext detaches storage calls from the client connection so a
// hang-up cannot stop a statement halfway through a multi-step operation.
func storageContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

// writeStorageError reports a failed storage call as a 500 carrying the raw
// failure message.
func writeStorageError(w http.ResponseWriter, err error) {
	code := utils.ErrServerInternal
	switch {
	case errors.Is(err, database.ErrReadFailure):
		code = utils.ErrStorageRead
	case errors.Is(err, database.ErrWriteFailure):
		code = utils.ErrStorageWrite
	}
	utils.WriteError(w, http.StatusInternalServerError, code, err.Error())
}
