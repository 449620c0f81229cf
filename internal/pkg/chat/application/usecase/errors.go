package usecase

import (
	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
)

// persistenceErr classifies repository failures uniformly so controllers can
// map them to 500s without leaking driver details.
func persistenceErr(err error) error {
	return apperr.Wrap(apperr.CodeInternal, "unexpected persistence error", err)
}
