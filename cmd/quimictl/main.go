// quimictl es la herramienta de operación de la plataforma: alta y
// aprovisionamiento de tenants, secuencias fiscales y usuarios iniciales,
// directo contra la base de datos sin pasar por la API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/quimidom/quimidom-api/internal/application/auth"
	"github.com/quimidom/quimidom-api/internal/application/dto"
	"github.com/quimidom/quimidom-api/internal/application/usecase"
	"github.com/quimidom/quimidom-api/internal/domain/entity"
	"github.com/quimidom/quimidom-api/internal/infrastructure/postgres"
	"github.com/quimidom/quimidom-api/pkg/config"
)

func main() {
	root := &cobra.Command{
		Use:           "quimictl",
		Short:         "Operación de la plataforma quimidom",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(tenantCmd(), sequenceCmd(), userCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env abre el pool con la misma configuración que la API.
type env struct {
	pool       *pgxpool.Pool
	tenantUC   *usecase.TenantUseCase
	tenantRepo *postgres.TenantRepo
	close      func()
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.MigratePublic(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	tenantRepo := postgres.NewTenantRepository(pool)
	return &env{
		pool:       pool,
		tenantRepo: tenantRepo,
		tenantUC:   usecase.NewTenantUseCase(tenantRepo, postgres.NewSchemaManager(pool)),
		close:      pool.Close,
	}, nil
}

// resolveTenant busca un tenant por slug para los subcomandos que operan
// dentro de un esquema.
func (e *env) resolveTenant(ctx context.Context, slug string) (*entity.Tenant, error) {
	t, err := e.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("tenant %q no existe", slug)
	}
	return t, nil
}

func tenantCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "tenant", Short: "Administrar tenants"}

	var name, slug, hostname, rnc string
	create := &cobra.Command{
		Use:   "create",
		Short: "Registrar y aprovisionar un tenant nuevo",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			t, err := e.tenantUC.Create(ctx, dto.CreateTenantRequest{
				Name: name, Slug: slug, Hostname: hostname, RNC: rnc,
			})
			if err != nil {
				return err
			}
			fmt.Printf("tenant %s creado (id %s)\n", t.Slug, t.ID)
			return nil
		},
	}
	create.Flags().StringVar(&name, "name", "", "nombre comercial")
	create.Flags().StringVar(&slug, "slug", "", "identificador corto")
	create.Flags().StringVar(&hostname, "hostname", "", "hostname de acceso")
	create.Flags().StringVar(&rnc, "rnc", "", "RNC de la empresa")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("slug")
	_ = create.MarkFlagRequired("hostname")

	provision := &cobra.Command{
		Use:   "provision <tenant-id>",
		Short: "Reejecutar las migraciones del esquema de un tenant",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			t, err := e.tenantUC.Provision(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("tenant %s aprovisionado\n", t.Slug)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Listar tenants registrados",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			tenants, err := e.tenantUC.List(ctx)
			if err != nil {
				return err
			}
			for _, t := range tenants {
				state := "activo"
				if !t.IsActive {
					state = "inactivo"
				}
				fmt.Printf("%s\t%s\t%s\t%s\n", t.ID, t.Slug, t.Hostname, state)
			}
			return nil
		},
	}

	cmd.AddCommand(create, provision, list)
	return cmd
}

func sequenceCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "sequence", Short: "Administrar secuencias fiscales NCF"}

	var tenantSlug, seqType, prefix, validUntil string
	var start, end int64
	create := &cobra.Command{
		Use:   "create",
		Short: "Registrar una secuencia NCF autorizada por la DGII",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			t, err := e.resolveTenant(ctx, tenantSlug)
			if err != nil {
				return err
			}
			seq, err := usecase.NewSequenceUseCase(postgres.NewFiscalSequenceRepository(e.pool)).
				Create(ctx, t, dto.CreateSequenceRequest{
					SequenceType: seqType,
					Prefix:       prefix,
					StartNumber:  start,
					EndNumber:    end,
					ValidUntil:   validUntil,
				})
			if err != nil {
				return err
			}
			fmt.Printf("secuencia %s creada (id %s, %d disponibles)\n", seq.SequenceType, seq.ID, seq.Remaining)
			return nil
		},
	}
	create.Flags().StringVar(&tenantSlug, "tenant", "", "slug del tenant")
	create.Flags().StringVar(&seqType, "type", "", "tipo NCF (B01, B02, B14, B15)")
	create.Flags().StringVar(&prefix, "prefix", "", "prefijo del NCF (vacío = igual al tipo)")
	create.Flags().Int64Var(&start, "start", 1, "primer número autorizado")
	create.Flags().Int64Var(&end, "end", 0, "último número autorizado")
	create.Flags().StringVar(&validUntil, "valid-until", "", "fecha de vencimiento YYYY-MM-DD")
	_ = create.MarkFlagRequired("tenant")
	_ = create.MarkFlagRequired("type")
	_ = create.MarkFlagRequired("end")
	_ = create.MarkFlagRequired("valid-until")

	cmd.AddCommand(create)
	return cmd
}

func userCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "Administrar usuarios de un tenant"}

	var tenantSlug, email, password, name, role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Crear un usuario (p. ej. el admin inicial del tenant)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := openEnv(ctx)
			if err != nil {
				return err
			}
			defer e.close()
			t, err := e.resolveTenant(ctx, tenantSlug)
			if err != nil {
				return err
			}
			// El secret JWT no se usa para crear usuarios; basta uno vacío.
			authUC := auth.NewAuthUseCase(postgres.NewUserRepository(e.pool), auth.JWTConfig{})
			user, err := authUC.RegisterUser(ctx, t, dto.RegisterRequest{
				Email: email, Password: password, Name: name, Role: role,
			})
			if err != nil {
				return err
			}
			fmt.Printf("usuario %s creado (id %s, rol %s)\n", user.Email, user.ID, user.Role)
			return nil
		},
	}
	create.Flags().StringVar(&tenantSlug, "tenant", "", "slug del tenant")
	create.Flags().StringVar(&email, "email", "", "email del usuario")
	create.Flags().StringVar(&password, "password", "", "contraseña inicial")
	create.Flags().StringVar(&name, "name", "", "nombre completo")
	create.Flags().StringVar(&role, "role", "admin", "rol: admin, manager o user")
	_ = create.MarkFlagRequired("tenant")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}
