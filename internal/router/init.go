package router

import (
	kycapp "github.com/pawmart/pawmart-backend/internal/application"
	"github.com/pawmart/pawmart-backend/internal/container"
	"github.com/pawmart/pawmart-backend/internal/infrastructure/gcs"
	pginfra "github.com/pawmart/pawmart-backend/internal/infrastructure/postgres"
	handlers "github.com/pawmart/pawmart-backend/internal/interface/http"
	"github.com/pawmart/pawmart-backend/internal/router/modules"
)

type KycModuleDeps struct {
	Store   *pginfra.Store
	Service *kycapp.KycService
	Review  *kycapp.ReviewService
	Queries *kycapp.AdminQueryService
	Handler *handlers.KycHandler
}

func buildKycDeps() KycModuleDeps {
	cfg := container.GetConfig()
	store := pginfra.NewStore(container.GetPGPool())

	docs := &gcs.DocumentStore{
		Client: container.GetGCS(),
		Bucket: cfg.GCSBucket,
	}

	service := &kycapp.KycService{
		Store:          store,
		Docs:           docs,
		Redis:          container.GetRedis(),
		Logger:         container.GetLogger(),
		ES:             container.GetES(),
		ESKycIndex:     cfg.ESKycIndex,
		StrictRoleDocs: cfg.KycStrictRoleDocs,
	}

	review := &kycapp.ReviewService{
		Store:      store,
		Redis:      container.GetRedis(),
		Logger:     container.GetLogger(),
		ES:         container.GetES(),
		ESKycIndex: cfg.ESKycIndex,
		Notifier:   container.GetRabbitPub(),
	}

	queries := &kycapp.AdminQueryService{
		Store:      store,
		Logger:     container.GetLogger(),
		ES:         container.GetES(),
		ESKycIndex: cfg.ESKycIndex,
	}

	handler := handlers.NewKycHandler(
		service,
		review,
		queries,
		container.GetLogger(),
		cfg.KycMaxUploadBytes,
	)

	return KycModuleDeps{
		Store:   store,
		Service: service,
		Review:  review,
		Queries: queries,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	kycDeps := buildKycDeps()
	r.Add(modules.NewKycModule(kycDeps.Handler, container.GetJWT()))
	r.Add(modules.NewDebugModule())
}
