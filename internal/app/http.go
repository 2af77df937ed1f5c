package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/dainouesuketarou/subsc-manager-sub001/internal/auth"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/authcache"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/config"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/handler"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/httpx"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/logger"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/provider"
	"github.com/dainouesuketarou/subsc-manager-sub001/internal/subscription"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	prov := provider.Default(cfg.SupabaseURL, cfg.SupabaseAnonKey, logger.L())

	var authOpts []auth.Option
	if infra.Redis != nil {
		authOpts = append(authOpts, auth.WithCache(
			authcache.New(infra.Redis.Client, authcache.DefaultTTL),
		))
	}
	authMiddleware := auth.NewMiddleware(prov, logger.L(), authOpts...)

	repo := subscription.NewRepository(infra.DB)
	subService := subscription.NewService(repo)

	fmtr := httpx.Formatter{Production: cfg.IsProduction()}

	apiHandler := handler.New(subService, prov, authMiddleware, fmtr, logger.L())

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	apiHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return router, infra.Close, nil
}
