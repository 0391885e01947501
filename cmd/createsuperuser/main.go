// Command createsuperuser seeds an active ADMIN account.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/config"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/observability"
	"github.com/spec-kit/support-desk/internal/persistence"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util/errorutil"
)

type options struct {
	username string
	password string
	email    string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := pflag.NewFlagSet("createsuperuser", pflag.ContinueOnError)
	fs.StringVarP(&opts.username, "username", "u", "admin", "username of the new admin")
	fs.StringVarP(&opts.password, "password", "p", "root@toor", "password of the new admin")
	fs.StringVarP(&opts.email, "email", "e", "", "optional email address")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// input applies the same field rules as POST /users.
func (o options) input() (service.CreateUserInput, error) {
	req := dto.CreateUserRequest{
		RegisterRequest: dto.RegisterRequest{Username: o.username, Password: o.password},
		Role:            domain.RoleAdmin,
		Status:          domain.UserStatusActive,
	}
	if o.email != "" {
		email := o.email
		req.Email = &email
	}
	if err := dto.Validate(req); err != nil {
		return service.CreateUserInput{}, err
	}
	return req.Input(), nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("createsuperuser: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	in, err := opts.input()
	if err != nil {
		logger.Fatal("invalid superuser", zap.Any("details", apperrors.ToDomainError(err).Details))
	}

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	pool := pg.PoolHandle()
	users := repository.NewUserRepository(pool)
	svc := service.NewUserService(cfg.Auth, users, service.NewChecks(users, repository.NewTicketRepository(pool)))

	id, err := svc.Create(ctx, in)
	if err != nil {
		logger.Fatal("unable to create superuser", zap.String("username", opts.username), zap.Error(err))
	}
	fmt.Printf("created superuser %s (%s)\n", opts.username, id)
}
