package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/parlourbd/parlour-server/internal/audit"
	"github.com/parlourbd/parlour-server/internal/config"
	"github.com/parlourbd/parlour-server/internal/handlers"
	"github.com/parlourbd/parlour-server/internal/middleware"
	"github.com/parlourbd/parlour-server/internal/payments"
	"github.com/parlourbd/parlour-server/internal/store"
	"github.com/parlourbd/parlour-server/internal/token"
	ucbooking "github.com/parlourbd/parlour-server/internal/usecase/booking"
	ucpayment "github.com/parlourbd/parlour-server/internal/usecase/payment"
)

// RegisterRoutes builds every dependency explicitly and declares the route
// table. db may be nil when the store never connected; data routes then
// answer 503 through the store gate.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log zerolog.Logger,
	intents payments.IntentCreator,
) {

	// ------------------------------
	// infra
	// ------------------------------
	tokens := token.NewService(cfg.JWTSecret)

	serviceStore := store.NewServiceStore(db)
	bookingStore := store.NewBookingStore(db)
	userStore := store.NewUserStore(db)
	paymentStore := store.NewPaymentStore(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ------------------------------
	// use cases
	// ------------------------------
	createBookingUC := ucbooking.NewCreate(bookingStore, auditDispatcher)
	recordPaymentUC := ucpayment.NewRecord(paymentStore, auditDispatcher)

	// ------------------------------
	// handlers
	// ------------------------------
	tokenHandler := handlers.NewTokenHandler(tokens)
	serviceHandler := handlers.NewServiceHandler(serviceStore, auditDispatcher)
	bookingHandler := handlers.NewBookingHandler(bookingStore, createBookingUC)
	userHandler := handlers.NewUserHandler(userStore, auditDispatcher)
	paymentHandler := handlers.NewPaymentHandler(intents, recordPaymentUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ------------------------------
	// gates
	// ------------------------------
	authn := middleware.Authenticate(tokens)
	self := middleware.RequireSelf()
	admin := middleware.RequireAdmin(userStore)
	storeGate := middleware.RequireStore(db)

	// ------------------------------
	// routes
	// ------------------------------
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Parlour server is up and running")
	})

	r.POST("/jwt", tokenHandler.Issue)

	api := r.Group("/", storeGate)
	{
		api.GET("/services", serviceHandler.List)
		api.POST("/services", authn, admin, serviceHandler.Create)
		api.DELETE("/services/:id", authn, admin, serviceHandler.Delete)

		api.GET("/bookingsForAdmin", authn, admin, bookingHandler.ListForAdmin)
		api.GET("/bookings", authn, self, bookingHandler.ListMine)
		api.GET("/bookings/:id", authn, self, bookingHandler.GetByID)
		api.DELETE("/bookings/:id", authn, self, bookingHandler.Delete)
		api.POST("/bookings", authn, bookingHandler.Create)

		api.GET("/users/admin", userHandler.IsAdmin)
		api.POST("/users", userHandler.Register)
		api.GET("/users", authn, admin, userHandler.List)
		api.PATCH("/makeAdmin", authn, admin, userHandler.MakeAdmin)

		api.POST("/create-payment-intent", authn, self, paymentHandler.CreateIntent)
		api.POST("/payments", authn, self, paymentHandler.RecordPayment)

		api.GET("/auditLogs", authn, admin, auditLogsHandler.List)
	}
}
