package rolevisibility

import (
	"context"

	"github.com/jhoicas/backoffice-api/internal/domain/visibility"
)

// StructureCache caché de la estructura jerárquica por usuario.
// Las entradas se leen y escriben bajo una versión leída con Version; Bump la
// incrementa y deja inalcanzables todas las anteriores.
type StructureCache interface {
	Version(ctx context.Context) (int64, error)
	Get(ctx context.Context, userID string, version int64) (*visibility.Structure, bool, error)
	Set(ctx context.Context, userID string, version int64, s *visibility.Structure) error
	Bump(ctx context.Context) error
}
