package postgres

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/public/*.sql
var publicMigrations embed.FS

// SchemaManager aprovisiona esquemas de tenant sobre el pool compartido.
type SchemaManager struct {
	pool *pgxpool.Pool
}

// NewSchemaManager construye el aprovisionador.
func NewSchemaManager(pool *pgxpool.Pool) *SchemaManager {
	return &SchemaManager{pool: pool}
}

// ProvisionTenant crea y migra el esquema indicado.
func (m *SchemaManager) ProvisionTenant(ctx context.Context, schema string) error {
	return ProvisionTenant(ctx, m.pool, schema)
}

//go:embed migrations/tenant/*.sql
var tenantMigrations embed.FS

// MigratePublic aplica las migraciones del esquema public (tabla de tenants).
func MigratePublic(ctx context.Context, pool *pgxpool.Pool) error {
	sub, err := fs.Sub(publicMigrations, "migrations/public")
	if err != nil {
		return fmt.Errorf("fs migraciones public: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, sub)
	if err != nil {
		return fmt.Errorf("goose provider public: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrar public: %w", err)
	}
	return nil
}

// ProvisionTenant crea el esquema del tenant si no existe y aplica las
// migraciones de negocio dentro de él. La tabla de versión de goose queda en
// el mismo esquema, así cada tenant migra de forma independiente.
func ProvisionTenant(ctx context.Context, pool *pgxpool.Pool, schema string) error {
	if _, err := pool.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, pgx.Identifier{schema}.Sanitize())); err != nil {
		return fmt.Errorf("crear esquema %s: %w", schema, err)
	}

	sub, err := fs.Sub(tenantMigrations, "migrations/tenant")
	if err != nil {
		return fmt.Errorf("fs migraciones tenant: %w", err)
	}

	// Conexión dedicada con search_path fijado al esquema del tenant: las
	// migraciones usan nombres de tabla sin calificar.
	connCfg := pool.Config().ConnConfig.Copy()
	if connCfg.RuntimeParams == nil {
		connCfg.RuntimeParams = map[string]string{}
	}
	connCfg.RuntimeParams["search_path"] = schema
	db := stdlib.OpenDB(*connCfg)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, sub)
	if err != nil {
		return fmt.Errorf("goose provider tenant: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrar esquema %s: %w", schema, err)
	}
	return nil
}
