package usecase

import (
	"github.com/AsyncNomad/nolzaGo-back/internal/apperr"
)

func persistenceErr(err error) error {
	return apperr.Wrap(apperr.CodeInternal, "unexpected persistence error", err)
}
