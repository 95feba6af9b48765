package contract

import (
	"context"

	"github.com/cokeastorga/astorgayabogados/internal/entity"
	"github.com/cokeastorga/astorgayabogados/internal/repository/specification"
)

type AuditRepository interface {
	Create(ctx context.Context, record *entity.AuditRecord) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
