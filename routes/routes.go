package routes

import (
	"net/http"

	"github.com/Fenet-Ab/fen-one-shop/configs"
	"github.com/Fenet-Ab/fen-one-shop/controllers"
	"github.com/Fenet-Ab/fen-one-shop/middlewares"
	"github.com/Fenet-Ab/fen-one-shop/pkg/chapa"
	"github.com/Fenet-Ab/fen-one-shop/pkg/metrics"
	"github.com/Fenet-Ab/fen-one-shop/policy"
	"github.com/Fenet-Ab/fen-one-shop/repository"
	"github.com/Fenet-Ab/fen-one-shop/services"
	"github.com/Fenet-Ab/fen-one-shop/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps are the collaborators built outside the router.
type Deps struct {
	DB      *gorm.DB
	Config  *configs.Config
	Gateway services.PaymentGateway
}

// RegisterRoutes wires repositories, services and controllers under /api and
// returns the support hub so the caller can run it.
func RegisterRoutes(r *gin.Engine, d Deps) *ws.SupportHub {
	db, cfg := d.DB, d.Config
	if d.Gateway == nil {
		d.Gateway = chapa.NewClient(cfg.ChapaBaseURL, cfg.ChapaSecretKey, cfg.PaymentTimeout)
	}

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	supportRepo := repository.NewSupportRepository(db)

	// Services
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, cfg.AdminSecret)
	categorySvc := services.NewCategoryService(categoryRepo)
	materialSvc := services.NewMaterialService(db, materialRepo, categoryRepo, cfg.UploadDir)
	cartSvc := services.NewCartService(db, cartRepo)
	notifSvc := services.NewNotificationService(notifRepo, userRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, userRepo, notifSvc)
	paymentSvc := services.NewPaymentService(orderRepo, userRepo, d.Gateway, services.PaymentConfig{
		Currency:    cfg.PaymentCurrency,
		APIBaseURL:  cfg.APIBaseURL,
		FrontendURL: cfg.FrontendURL,
	})
	ratingSvc := services.NewRatingService(db, ratingRepo, materialRepo)
	likeSvc := services.NewLikeService(likeRepo, materialRepo)
	supportSvc := services.NewSupportService(supportRepo, userRepo)
	profileSvc := services.NewProfileService(db, userRepo, orderRepo, cartRepo, notifRepo, ratingRepo, likeRepo, supportRepo, ratingSvc)

	hub := ws.NewSupportHub(supportSvc)
	supportSvc.Publisher = hub

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	categoryCtrl := controllers.NewCategoryController(categorySvc)
	materialCtrl := controllers.NewMaterialController(materialSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	notifCtrl := controllers.NewNotificationController(notifSvc)
	ratingCtrl := controllers.NewRatingController(ratingSvc)
	likeCtrl := controllers.NewLikeController(likeSvc)
	supportCtrl := controllers.NewSupportController(supportSvc)
	profileCtrl := controllers.NewProfileController(profileSvc)

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)
	can := middlewares.Authorize

	api := r.Group("/api")

	a := api.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	cat := api.Group("/category")
	{
		cat.GET("", can(policy.Category, policy.Read), categoryCtrl.List)
		cat.GET("/:id", can(policy.Category, policy.Read), categoryCtrl.Get)
		cat.POST("", auth, can(policy.Category, policy.Write), categoryCtrl.Create)
		cat.DELETE("/:id", auth, can(policy.Category, policy.Write), categoryCtrl.Delete)
	}

	mat := api.Group("/material")
	{
		mat.GET("", can(policy.Material, policy.Read), materialCtrl.List)
		mat.GET("/admin/export", auth, can(policy.Material, policy.Manage), materialCtrl.Export)
		mat.GET("/:id", can(policy.Material, policy.Read), materialCtrl.Get)
		mat.POST("", auth, can(policy.Material, policy.Write), materialCtrl.Create)
		mat.PUT("/:id", auth, can(policy.Material, policy.Write), materialCtrl.Update)
		mat.DELETE("/:id", auth, can(policy.Material, policy.Write), materialCtrl.Delete)
	}

	cart := api.Group("/cart", auth, can(policy.Cart, policy.Write))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/add", cartCtrl.Add)
		cart.POST("/remove", cartCtrl.Decrement)
		cart.POST("/delete", cartCtrl.Remove)
	}

	ord := api.Group("/order", auth)
	{
		ord.POST("/checkout", can(policy.Order, policy.Write), orderCtrl.Checkout)
		ord.GET("/all", can(policy.Order, policy.Read), orderCtrl.ListMine)
		ord.GET("/admin/all", can(policy.Order, policy.Manage), orderCtrl.ListAll)
		ord.GET("/admin/market-share", can(policy.Order, policy.Manage), orderCtrl.MarketShare)
		ord.GET("/admin/export", can(policy.Order, policy.Manage), orderCtrl.Export)
		ord.GET("/:id", can(policy.Order, policy.Read), orderCtrl.Get)
		ord.DELETE("/:id", can(policy.Order, policy.Write), orderCtrl.Delete)
		ord.PATCH("/delivery/:id", can(policy.Order, policy.Manage), orderCtrl.UpdateDelivery)
	}

	pay := api.Group("/payment")
	{
		pay.POST("/initialize", auth, can(policy.Payment, policy.Write), paymentCtrl.Initialize)
		// provider callback and storefront redirect; no token
		pay.GET("/verify/:id", paymentCtrl.Verify)
	}

	notif := api.Group("/notification", auth)
	{
		notif.POST("", can(policy.Notification, policy.Manage), notifCtrl.Create)
		notif.GET("", can(policy.Notification, policy.Read), notifCtrl.List)
		notif.PATCH("/read-all", can(policy.Notification, policy.Write), notifCtrl.MarkAllRead)
		notif.PATCH("/:id/read", can(policy.Notification, policy.Write), notifCtrl.MarkRead)
	}

	rate := api.Group("/rating")
	{
		rate.GET("/top", can(policy.Rating, policy.Read), ratingCtrl.Top)
		rate.GET("/material/:materialId", can(policy.Rating, policy.Read), ratingCtrl.ListForMaterial)
		rate.GET("/material/:materialId/stats", can(policy.Rating, policy.Read), ratingCtrl.Stats)
		rate.GET("/my", auth, can(policy.Rating, policy.Read), ratingCtrl.AllMine)
		rate.GET("/my/:materialId", auth, can(policy.Rating, policy.Read), ratingCtrl.Mine)
		rate.POST("/:materialId", auth, can(policy.Rating, policy.Write), ratingCtrl.Rate)
		rate.DELETE("/:materialId", auth, can(policy.Rating, policy.Write), ratingCtrl.Delete)
	}

	like := api.Group("/like", auth, can(policy.Like, policy.Write))
	{
		like.GET("", likeCtrl.ListMine)
		like.POST("/:materialId", likeCtrl.Toggle)
	}

	sup := api.Group("/support", auth)
	{
		sup.POST("", can(policy.Support, policy.Write), supportCtrl.Send)
		sup.GET("", can(policy.Support, policy.Read), supportCtrl.Mine)
		sup.GET("/admin/conversations", can(policy.Support, policy.Manage), supportCtrl.Conversations)
		sup.GET("/admin/:userId", can(policy.Support, policy.Manage), supportCtrl.ForUser)
		sup.POST("/admin/:userId", can(policy.Support, policy.Manage), supportCtrl.Reply)
	}

	prof := api.Group("/profile", auth)
	{
		prof.GET("", can(policy.Profile, policy.Read), profileCtrl.Get)
		prof.PUT("", can(policy.Profile, policy.Write), profileCtrl.Update)
		prof.DELETE("", can(policy.Profile, policy.Write), profileCtrl.Delete)
		prof.GET("/stats", can(policy.Profile, policy.Read), profileCtrl.Stats)
		prof.GET("/admin/users", can(policy.Users, policy.Read), profileCtrl.ListUsers)
	}

	wsAuth := middlewares.WSAuthMiddleware(cfg.JWTSecret)
	r.GET("/ws/support", wsAuth, can(policy.Support, policy.Read), hub.HandleWebSocket)
	r.GET("/ws/support/:userId", wsAuth, can(policy.Support, policy.Read), hub.HandleWebSocket)

	return hub
}
