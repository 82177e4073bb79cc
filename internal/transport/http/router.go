package http

import (
	"net/http"

	"github.com/ceptevar-api/internal/application/address"
	"github.com/ceptevar-api/internal/application/card"
	"github.com/ceptevar-api/internal/application/follow"
	"github.com/ceptevar-api/internal/application/notify"
	"github.com/ceptevar-api/internal/application/order"
	"github.com/ceptevar-api/internal/application/product"
	"github.com/ceptevar-api/internal/application/review"
	"github.com/ceptevar-api/internal/application/seller"
	"github.com/ceptevar-api/internal/application/stats"
	"github.com/ceptevar-api/internal/application/user"
	"github.com/ceptevar-api/internal/application/verification"
	"github.com/ceptevar-api/internal/config"
	"github.com/ceptevar-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/ceptevar-api/internal/infrastructure/jwt"
	s3infra "github.com/ceptevar-api/internal/infrastructure/s3"
	"github.com/ceptevar-api/internal/infrastructure/smtp"
	"github.com/ceptevar-api/internal/infrastructure/sns"
	"github.com/ceptevar-api/internal/transport/http/handler"
	appmiddleware "github.com/ceptevar-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	SellerRepo       *dynamo.SellerRepo
	ProductRepo      *dynamo.ProductRepo
	OrderRepo        *dynamo.OrderRepo
	CardRepo         *dynamo.CardRepo
	AddressRepo      *dynamo.AddressRepo
	ReviewRepo       *dynamo.ReviewRepo
	FollowRepo       *dynamo.FollowRepo
	VerificationRepo *dynamo.VerificationRepo
	S3Store          *s3infra.Store
	Mailer           smtp.Mailer
	SMSSender        sns.SMSSender
	JWTProvider      *jwtinfra.Provider
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}
	sellerOnly := appmiddleware.RequireAccountType("seller")
	userOnly := appmiddleware.RequireAccountType("user")

	// 5 requests/second, burst of 10 — applied to sensitive public endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	dispatcher := notify.NewDispatcher(deps.SMSSender, deps.Mailer, cfg.BrandName, cfg.NotifyTimeout)
	linker := verification.NewAccountLinker(deps.UserRepo, deps.SellerRepo)
	verifSvc := verification.NewService(deps.VerificationRepo, dispatcher, linker)
	userSvc := user.NewService(deps.UserRepo, verifSvc, deps.JWTProvider, dispatcher)
	sellerSvc := seller.NewService(deps.SellerRepo, verifSvc, deps.JWTProvider, deps.S3Store)
	productSvc := product.NewService(deps.ProductRepo, deps.SellerRepo, deps.S3Store)
	orderSvc := order.NewService(deps.OrderRepo, deps.ProductRepo, deps.UserRepo, dispatcher)
	cardSvc := card.NewService(deps.CardRepo)
	addressSvc := address.NewService(deps.AddressRepo)
	reviewSvc := review.NewService(deps.ReviewRepo, deps.ProductRepo)
	followSvc := follow.NewService(deps.FollowRepo, deps.SellerRepo)
	statsSvc := stats.NewService(deps.ProductRepo, deps.OrderRepo, deps.ReviewRepo, deps.FollowRepo, deps.UserRepo)

	healthH := handler.NewHealthHandler()
	verifH := handler.NewVerificationHandler(verifSvc)
	userH := handler.NewUserHandler(userSvc)
	sellerH := handler.NewSellerHandler(sellerSvc)
	productH := handler.NewProductHandler(productSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	cardH := handler.NewCardHandler(cardSvc)
	promoH := handler.NewPromotionHandler(deps.UserRepo, dispatcher)
	addressH := handler.NewAddressHandler(addressSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	followH := handler.NewFollowHandler(followSvc)
	statsH := handler.NewStatsHandler(statsSvc)

	r.Route("/v1", func(r chi.Router) {
		// Public routes.
		r.Get("/health-check", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/verifications/{channel}/request", verifH.Request)
		r.With(sensitiveRL.Limit).Post("/verifications/{channel}/verify", verifH.Verify)
		r.With(sensitiveRL.Limit).Post("/users", userH.Register)
		r.With(sensitiveRL.Limit).Post("/users/login", userH.Login)
		r.With(sensitiveRL.Limit).Post("/sellers", sellerH.Register)
		r.With(sensitiveRL.Limit).Post("/sellers/login", sellerH.Login)
		r.Get("/products", productH.ListAll)
		r.Get("/products/{id}", productH.Get)
		r.Get("/sellers/{id}", sellerH.Get)
		r.Get("/sellers/{id}/products", productH.ListBySeller)
		r.Get("/sellers/{id}/followers-count", followH.FollowersCount)
		r.Get("/reviews", reviewH.List)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/users", userH.List)
			r.Get("/users/{id}", userH.Get)
			r.Put("/users/{id}", userH.Update)
			r.Delete("/users/{id}", userH.Delete)
			r.Put("/users/{id}/password", userH.ChangePassword)

			r.With(sellerOnly).Put("/sellers/{id}", sellerH.Update)
			r.With(sellerOnly).Post("/sellers/{id}/logo", sellerH.UploadLogo)
			r.With(sellerOnly).Delete("/sellers/{id}", sellerH.Delete)

			r.With(sellerOnly).Post("/products", productH.Create)
			r.With(sellerOnly).Put("/products/{id}", productH.Update)
			r.With(sellerOnly).Post("/products/{id}/image", productH.UploadImage)
			r.With(sellerOnly).Delete("/products/{id}", productH.Delete)

			r.Get("/orders", orderH.ListMine)
			r.Get("/orders/{id}", orderH.Get)
			r.With(userOnly).Post("/orders", orderH.Create)
			r.With(userOnly).Post("/orders/{id}/cancel", orderH.Cancel)
			r.With(sellerOnly).Put("/orders/{id}/status", orderH.UpdateStatus)

			r.With(userOnly).Post("/cards", cardH.Tokenize)
			r.With(userOnly).Get("/cards", cardH.List)
			r.With(userOnly).Delete("/cards/{id}", cardH.Delete)
			r.With(userOnly).Post("/payments/charge", cardH.Charge)

			r.With(userOnly).Post("/addresses", addressH.Create)
			r.With(userOnly).Get("/addresses", addressH.List)
			r.With(userOnly).Put("/addresses/{id}", addressH.Update)
			r.With(userOnly).Delete("/addresses/{id}", addressH.Delete)

			r.With(userOnly).Post("/reviews", reviewH.Create)
			r.With(userOnly).Put("/reviews/{id}", reviewH.Update)
			r.With(userOnly).Delete("/reviews/{id}", reviewH.Delete)

			r.With(userOnly).Post("/sellers/{sellerID}/follow", followH.Follow)
			r.With(userOnly).Delete("/sellers/{sellerID}/follow", followH.Unfollow)
			r.With(userOnly).Get("/followed-sellers", followH.FollowedSellers)

			r.With(sellerOnly).Get("/sellers/me/statistics", statsH.SellerStatistics)
			r.With(sellerOnly).Post("/promotions/sms", promoH.Send)
		})
	})

	return r
}
