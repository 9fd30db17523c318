package service

import (
	"github.com/pixeldock/pixeldock/pkg/storage"
	"github.com/pixeldock/pixeldock/pkg/validator"
	"github.com/pixeldock/pixeldock/pkg/view"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Pricing carries the configured default asset price and currency.
type Pricing struct {
	DefaultPrice float64
	Currency     string
}

// Service orchestrates marketplace operations using Logic.
type Service struct {
	logic   *Logic
	store   storage.Storage
	gateway PaymentGateway
	views   *view.Invalidator
	upload  *validator.UploadConfig
	pricing Pricing
	appURL  string
	redis   *redis.Client
}

// Options carries the external collaborators a Service needs.
type Options struct {
	DB      *gorm.DB
	Storage storage.Storage
	Gateway PaymentGateway
	Views   *view.Invalidator
	Upload  *validator.UploadConfig
	Pricing Pricing
	AppURL  string
	// Redis enables the purchase write lock when set.
	Redis *redis.Client
}

func NewService(opts Options) *Service {
	views := opts.Views
	if views == nil {
		views = view.NewInvalidator(nil, "")
	}
	upload := opts.Upload
	if upload == nil {
		upload = validator.NewUploadConfig(0, nil)
	}
	return &Service{
		logic:   NewLogic(opts.DB),
		store:   opts.Storage,
		gateway: opts.Gateway,
		views:   views,
		upload:  upload,
		pricing: opts.Pricing,
		appURL:  opts.AppURL,
		redis:   opts.Redis,
	}
}
