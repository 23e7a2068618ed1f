package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawmart/pawmart-backend/internal/container"
	handlers "github.com/pawmart/pawmart-backend/internal/interface/http"
	"github.com/pawmart/pawmart-backend/internal/interface/middleware"
	"github.com/pawmart/pawmart-backend/pkg/helpers"
)

// KycModule wires the KYC handlers into routes under /api/kyc.
// Submission and my-kyc are user routes; listing, lookup, review and
// search require the ADMIN role.
type KycModule struct {
	Handler *handlers.KycHandler
	JWT     *helpers.JWTManager
}

func NewKycModule(h *handlers.KycHandler, jwt *helpers.JWTManager) *KycModule {
	return &KycModule{Handler: h, JWT: jwt}
}

func (m *KycModule) Register(rg *gin.RouterGroup) {
	kyc := rg.Group("/kyc")
	kyc.Use(middleware.Auth(container.GetRedis(), m.JWT))
	kyc.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil))

	// Uploads are expensive, keep the submit limiter tight.
	submitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByUserID(), nil)

	kyc.POST("/submit", submitLimiter, m.Handler.SubmitKyc)
	kyc.GET("/my-kyc", m.Handler.GetMyKyc)

	adminOnly := middleware.RequireAdmin()
	kyc.GET("", adminOnly, m.Handler.GetAllKyc)
	kyc.GET("/search", adminOnly, m.Handler.SearchKyc)
	kyc.GET("/:id", adminOnly, m.Handler.GetKycByID)
	kyc.PATCH("/approval/:id", adminOnly, m.Handler.ApproveKyc)
	kyc.PATCH("/rejection/:id", adminOnly, m.Handler.RejectKyc)
}
