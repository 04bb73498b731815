package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/agency-data-api/infrastructure/database/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const pragmas = "_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// Connection é o banco embarcado que guarda o cache local e a fila offline
type Connection struct {
	*sql.DB
	path string
}

// Open abre (ou cria) o arquivo SQLite e aplica as migrações embarcadas
func Open(ctx context.Context, path string) (*Connection, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("caminho do banco local é obrigatório")
	}

	cleanPath := filepath.Clean(path)
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório do banco local: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cleanPath+"?"+pragmas)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco local: %w", err)
	}

	// SQLite aceita um único escritor por vez
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao conectar no banco local: %w", err)
	}

	if err := ApplyMigrations(ctx, db, migrations.FS, "."); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("erro ao aplicar migrações do banco local: %w", err)
	}

	logrus.WithField("path", cleanPath).Info("Banco local inicializado")

	return &Connection{DB: db, path: cleanPath}, nil
}

func (c *Connection) Path() string {
	return c.path
}

// RunInTransaction executa fn dentro de uma transação
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
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
