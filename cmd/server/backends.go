package main

import (
	"context"
	"fmt"

	"github.com/artem13815/fintrack/pkg/auth"
	"github.com/artem13815/fintrack/pkg/config"
	"github.com/artem13815/fintrack/pkg/health"
	"github.com/artem13815/fintrack/pkg/health/checkers"
	"github.com/artem13815/fintrack/pkg/logging"
	"github.com/artem13815/fintrack/pkg/notify/logmail"
	"github.com/artem13815/fintrack/pkg/notify/relay"
	"github.com/artem13815/fintrack/pkg/notify/smtp"
	"github.com/artem13815/fintrack/pkg/repository/memory"
	mongorepo "github.com/artem13815/fintrack/pkg/repository/mongo"
	pgrepo "github.com/artem13815/fintrack/pkg/repository/postgres"
	redisrepo "github.com/artem13815/fintrack/pkg/repository/redis"
	mongostore "github.com/artem13815/fintrack/pkg/storage/mongo"
	"github.com/artem13815/fintrack/pkg/storage/postgres"
	redisstore "github.com/artem13815/fintrack/pkg/storage/redis"
)

const usersCollection = "users"

type backends struct {
	users    auth.UserRepository
	codes    auth.CodeStore
	mailer   auth.Notifier
	checkers []health.Checker
	closers  []func()
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openBackends connects the user store, the code store and the mailer
// selected by cfg. On error everything opened so far is closed.
func openBackends(ctx context.Context, cfg config.Config, logger logging.Logger) (_ *backends, err error) {
	b := &backends{}
	defer func() {
		if err != nil {
			b.close()
		}
	}()

	// codes default to the user store; each branch sets both
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres connect: %w", err)
		}
		b.closers = append(b.closers, pool.Close)
		if err := postgres.Migrate(ctx, pool); err != nil {
			return nil, err
		}
		b.users = pgrepo.NewUserRepository(pool)
		b.codes = pgrepo.NewCodeStore(pool)
		b.checkers = append(b.checkers, checkers.NewPostgresChecker(pool))
	case "mongo":
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Disconnect(context.Background()) })
		repo := mongorepo.NewUserRepository(client.Database(cfg.MongoDB), usersCollection)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("mongo indexes: %w", err)
		}
		b.users, b.codes = repo, repo
		b.checkers = append(b.checkers, checkers.NewMongoChecker(client))
	case "memory":
		logger.Warn(ctx, "using in-memory store, data is lost on restart")
		store := memory.NewStore()
		b.users, b.codes = store, store
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	if cfg.CodeStore == "redis" {
		client, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() { _ = client.Close() })
		b.codes = redisrepo.NewCodeStore(client, redisrepo.DefaultPrefix)
		b.checkers = append(b.checkers, checkers.NewRedisChecker(client))
	}

	switch cfg.MailDriver {
	case "smtp":
		sender, err := smtp.New(smtp.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		if err != nil {
			return nil, err
		}
		b.mailer = sender
	case "relay":
		b.mailer = relay.New(cfg.MailRelayAPIKey, cfg.MailRelayURL, cfg.MailFrom)
	default:
		b.mailer = logmail.New(logger.With("component", "mail"))
	}
	return b, nil
}
