package repository

import (
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

//go:generate mockgen -source=client.go -destination=mocks/client.go -package=mocks
//go:generate mockgen -source=campaign.go -destination=mocks/campaign.go -package=mocks
//go:generate mockgen -source=metric.go -destination=mocks/metric.go -package=mocks
//go:generate mockgen -source=alert.go -destination=mocks/alert.go -package=mocks
//go:generate mockgen -source=optimization.go -destination=mocks/optimization.go -package=mocks

// scanner é satisfeito tanto por *sql.Row quanto por *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// wrapDatabaseError preserva o código do postgres na mensagem quando disponível
func wrapDatabaseError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: erro no banco de dados: %w (código: %s)", message, pqErr, pqErr.Code)
	}
	return errors.Wrap(err, message)
}
