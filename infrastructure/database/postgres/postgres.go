package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/internal/config"
)

const pingTimeout = 5 * time.Second

// Connection é a conexão com o backend relacional remoto
type Connection struct {
	*sql.DB
}

// NewConnection abre o pool de conexões. O backend pode estar fora do ar na
// inicialização; nesse caso apenas registramos o aviso e os provedores
// passam a servir do cache local até a conexão voltar.
func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	conn := &Connection{DB: db}
	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Warn("Backend remoto indisponível na inicialização")
	}

	return conn, nil
}

// Ping verifica a conexão com timeout curto
func (c *Connection) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return c.DB.PingContext(ctx)
}

// RunInTransaction confirma fn por inteiro ou reverte tudo
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if err := tx.Rollback(); err != nil {
			return err
		}
		return err
	}

	return tx.Commit()
}
