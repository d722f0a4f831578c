package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/blogcrud/internal/blogservice"
	"github.com/sushihentaime/blogcrud/internal/common"
	"github.com/sushihentaime/blogcrud/internal/mailservice"
	"github.com/sushihentaime/blogcrud/internal/userservice"
	"golang.org/x/time/rate"
)

type application struct {
	config      *Config
	logger      *slog.Logger
	limiter     *rate.Limiter
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
	broker      *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dsn := common.DSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	if cfg.MigrationsPath != "" {
		m, err := common.Migrate(cfg.MigrationsPath, dsn)
		if err != nil {
			logger.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		m.Close()
		logger.Info("database migrations applied", slog.String("source", cfg.MigrationsPath))
	}

	db, err := common.NewDB(dsn, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cache := common.NewCache(cfg.TokenCacheTTL, 2*cfg.TokenCacheTTL)

	app := &application{
		config:      cfg,
		logger:      logger,
		limiter:     rate.NewLimiter(rate.Limit(cfg.LimiterRPS), cfg.LimiterBurst),
		userService: userservice.NewUserService(db, broker, cache),
		blogService: blogservice.NewBlogService(db),
		mailService: mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, logger),
		broker:      broker,
	}

	app.mailService.SendWelcomeEmail()
	defer app.mailService.Close()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
