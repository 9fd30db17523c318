package main

import (
	"log"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/pixeldock/pixeldock/biz/dal/model"
	"github.com/pixeldock/pixeldock/biz/handler"
	"github.com/pixeldock/pixeldock/biz/middleware"
	"github.com/pixeldock/pixeldock/biz/router"
	"github.com/pixeldock/pixeldock/biz/service"
	"github.com/pixeldock/pixeldock/pkg/config"
	"github.com/pixeldock/pixeldock/pkg/database"
	"github.com/pixeldock/pixeldock/pkg/lock"
	"github.com/pixeldock/pixeldock/pkg/paypal"
	pkgredis "github.com/pixeldock/pixeldock/pkg/redis"
	"github.com/pixeldock/pixeldock/pkg/session"
	"github.com/pixeldock/pixeldock/pkg/storage"
	"github.com/pixeldock/pixeldock/pkg/validator"
	"github.com/pixeldock/pixeldock/pkg/view"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("[Init] load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("[Init] open database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Asset{},
		&model.Payment{},
		&model.Purchase{},
		&model.Invoice{},
	); err != nil {
		log.Fatalf("[Init] migrate: %v", err)
	}
	log.Printf("[Init] database ready (%s)", cfg.Database.Driver)

	redisClient, err := pkgredis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("[Init] redis: %v", err)
	}
	if redisClient != nil {
		log.Printf("[Init] redis connected at %s", cfg.Redis.Address)
		middleware.InitAdminWriteLock(lock.New(redisClient, "pixeldock:admin:write", 10*time.Second, 5*time.Second))
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("[Init] storage: %v", err)
	}
	log.Printf("[Init] storage backend: %s", store.Type())

	sessionClient := session.NewClient(session.Config{
		BaseURL:    cfg.Auth.BaseURL,
		CookieName: cfg.Auth.CookieName,
		Secret:     cfg.Auth.Secret,
	})

	gateway := service.NewPayPalGateway(paypal.New(paypal.Config{
		APIURL:       cfg.PayPal.APIURL,
		ClientID:     cfg.PayPal.ClientID,
		ClientSecret: cfg.PayPal.ClientSecret,
	}))

	svc := service.NewService(service.Options{
		DB:      db,
		Storage: store,
		Gateway: gateway,
		Views:   view.NewInvalidator(redisClient, "pixeldock"),
		Upload:  validator.NewUploadConfig(cfg.Upload.MaxSize, cfg.Upload.AllowedTypes),
		Pricing: service.Pricing{DefaultPrice: cfg.Pricing.DefaultPrice, Currency: cfg.Pricing.Currency},
		AppURL:  cfg.Server.AppURL,
		Redis:   redisClient,
	})

	h := server.Default(server.WithHostPorts(cfg.Server.Address))
	h.Use(middleware.Recovery())
	h.Use(middleware.Logging())
	h.Use(middleware.CORS(&cfg.CORS))
	h.Use(middleware.Session(sessionClient))

	router.Register(h, handler.NewHandler(svc, store))

	log.Printf("[Init] listening on %s", cfg.Server.Address)
	h.Spin()
}
