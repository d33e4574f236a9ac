package v1

import (
	"errors"
	"net/http"

	"jayam-backend/internal/domain"
	"jayam-backend/pkg/logger"
	"jayam-backend/pkg/utils"
)

// writeDomainError maps the domain error taxonomy onto HTTP statuses.
// Anything untyped is an internal error and is logged, not leaked.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		pe *domain.PreconditionError
	)
	switch {
	case errors.As(err, &ve):
		utils.WriteError(w, http.StatusBadRequest, ve.Msg)
	case errors.As(err, &nf):
		utils.WriteError(w, http.StatusNotFound, nf.Msg)
	case errors.As(err, &pe):
		utils.WriteError(w, http.StatusBadRequest, pe.Msg)
	default:
		logger.WithContext(r.Context()).Error().Err(err).
			Str("path", r.URL.Path).Msg("Unhandled error")
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
