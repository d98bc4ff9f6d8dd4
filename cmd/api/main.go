package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	appadmin "github.com/xiebiao/bookmall/internal/application/admin"
	appbook "github.com/xiebiao/bookmall/internal/application/book"
	appcart "github.com/xiebiao/bookmall/internal/application/cart"
	apporder "github.com/xiebiao/bookmall/internal/application/order"
	appprebook "github.com/xiebiao/bookmall/internal/application/prebook"
	appreview "github.com/xiebiao/bookmall/internal/application/review"
	appuser "github.com/xiebiao/bookmall/internal/application/user"
	appwishlist "github.com/xiebiao/bookmall/internal/application/wishlist"
	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/user"
	"github.com/xiebiao/bookmall/internal/infrastructure/config"
	"github.com/xiebiao/bookmall/internal/infrastructure/payment"
	"github.com/xiebiao/bookmall/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookmall/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookmall/internal/interface/http/handler"
	"github.com/xiebiao/bookmall/internal/interface/http/middleware"
	"github.com/xiebiao/bookmall/pkg/jwt"
	"github.com/xiebiao/bookmall/pkg/logger"
	"github.com/xiebiao/bookmall/pkg/metrics"
	"github.com/xiebiao/bookmall/pkg/mq"
	"github.com/xiebiao/bookmall/pkg/response"
	"github.com/xiebiao/bookmall/pkg/tracing"

	_ "github.com/xiebiao/bookmall/docs" // swagger文档(swag init生成)
)

// @title           BookMall API
// @version         1.0
// @description     图书商城REST API。核心是购物车一次性结账:单个数据库事务内
// @description     按图书ID升序加行锁(SELECT FOR UPDATE)、全有或全无校验库存、
// @description     扣款落单扣库存清空购物车，防止超卖与死锁。
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式: Bearer <access_token>
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer logger.Sync()

	// 3. 初始化指标与链路追踪
	metrics.InitMetrics()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			logger.L().Fatal("初始化链路追踪失败", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()
	}

	// 4. 初始化数据库与Redis
	db, err := mysql.NewDB(cfg)
	if err != nil {
		logger.L().Fatal("初始化数据库失败", zap.Error(err))
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.L().Fatal("初始化Redis失败", zap.Error(err))
	}

	// 5. 初始化消息队列(可选,未启用时事件发布静默跳过)
	var publisher *mq.Publisher
	if cfg.MQ.Enabled {
		publisher, err = mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			logger.L().Fatal("初始化RabbitMQ失败", zap.Error(err))
		}
		defer publisher.Close()
	}

	// 6. 依赖注入(手动组装)
	// 依赖链:Repository ← Service ← UseCase ← Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	genreRepo := mysql.NewGenreRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	wishlistRepo := mysql.NewWishlistRepository(db)
	preBookRepo := mysql.NewPreBookRepository(db)
	analyticsRepo := mysql.NewAnalyticsRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)

	// 支付网关(熔断包装:网关故障时结账快速失败,不拖着行锁等超时)
	gateway := payment.NewBreakerGateway(payment.NewMockGateway(), cfg.Payment)

	// 领域层
	userService := user.NewService(userRepo)
	bookService := book.NewService(bookRepo, genreRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(sessionStore)
	publishBookUseCase := appbook.NewPublishBookUseCase(bookService)
	listBooksUseCase := appbook.NewListBooksUseCase(bookService)
	getBookUseCase := appbook.NewGetBookUseCase(bookService, reviewRepo)
	manageBookUseCase := appbook.NewManageBookUseCase(bookService)
	setStockUseCase := appbook.NewSetStockUseCase(bookRepo, preBookRepo, txManager, bookEventPublisher(publisher))
	genreUseCase := appbook.NewGenreUseCase(bookService)
	cartUseCase := appcart.NewCartUseCase(cartRepo, bookRepo)
	checkoutUseCase := apporder.NewCheckoutUseCase(
		cartRepo, bookRepo, orderRepo, gateway, txManager,
		orderEventPublisher(publisher), cfg.Checkout.LockTimeout,
	)
	orderQueryUseCase := apporder.NewOrderQueryUseCase(orderRepo)
	reviewUseCase := appreview.NewReviewUseCase(reviewRepo, orderRepo, bookRepo)
	wishlistUseCase := appwishlist.NewWishlistUseCase(wishlistRepo, bookRepo)
	preBookUseCase := appprebook.NewPreBookUseCase(preBookRepo, bookRepo)
	analyticsUseCase := appadmin.NewAnalyticsUseCase(analyticsRepo)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase, jwtManager)
	bookHandler := handler.NewBookHandler(
		publishBookUseCase, listBooksUseCase, getBookUseCase,
		manageBookUseCase, setStockUseCase, genreUseCase,
	)
	cartHandler := handler.NewCartHandler(cartUseCase)
	orderHandler := handler.NewOrderHandler(checkoutUseCase, orderQueryUseCase)
	reviewHandler := handler.NewReviewHandler(reviewUseCase)
	wishlistHandler := handler.NewWishlistHandler(wishlistUseCase)
	preBookHandler := handler.NewPreBookHandler(preBookUseCase)
	adminHandler := handler.NewAdminHandler(analyticsUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 7. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.AccessLog(), middleware.Metrics(), middleware.CORS())

	registerRoutes(r,
		userHandler, bookHandler, cartHandler, orderHandler,
		reviewHandler, wishlistHandler, preBookHandler, adminHandler,
		authMiddleware,
	)

	// 8. 启动服务(优雅关闭)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.L().Info("服务启动",
			zap.Int("port", cfg.Server.Port),
			zap.String("mode", cfg.Server.Mode))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.L().Fatal("启动服务失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.L().Info("收到退出信号，开始优雅关闭")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.L().Error("优雅关闭失败", zap.Error(err))
	}
	logger.L().Info("服务已退出")
}

// bookEventPublisher *mq.Publisher → 补货用例的发布接口
// MQ未启用时返回纯nil接口,避免接口包着nil指针通过非nil判断
func bookEventPublisher(p *mq.Publisher) appbook.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

// orderEventPublisher *mq.Publisher → 结账用例的发布接口
func orderEventPublisher(p *mq.Publisher) apporder.EventPublisher {
	if p == nil {
		return nil
	}
	return p
}

// registerRoutes 注册全部路由
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	reviewHandler *handler.ReviewHandler,
	wishlistHandler *handler.WishlistHandler,
	preBookHandler *handler.PreBookHandler,
	adminHandler *handler.AdminHandler,
	auth *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(http://localhost:8080/swagger/index.html)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 认证模块(公开)
		auth1 := v1.Group("/auth")
		{
			auth1.POST("/register", userHandler.Register)
			auth1.POST("/login", userHandler.Login)
			auth1.POST("/refresh", userHandler.RefreshToken)
			auth1.POST("/logout", auth.RequireAuth(), userHandler.Logout)
		}

		// 用户模块
		v1.GET("/users/me", auth.RequireAuth(), userHandler.Profile)

		// 图书模块(查询公开,管理需管理员)
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.POST("", auth.RequireAuth(), auth.RequireAdmin(), bookHandler.PublishBook)
			books.PATCH("/:id", auth.RequireAuth(), auth.RequireAdmin(), bookHandler.UpdateBook)
			books.PUT("/:id/stock", auth.RequireAuth(), auth.RequireAdmin(), bookHandler.SetStock)
			books.DELETE("/:id", auth.RequireAuth(), auth.RequireAdmin(), bookHandler.DeleteBook)
		}

		// 评论模块(列表公开,发表需登录)
		// 注意:gin同一前缀的路径参数名必须一致,评论路由单独成组
		bookReviews := v1.Group("/books/:id/reviews")
		{
			bookReviews.GET("", wrapBookIDParam(reviewHandler.ListBookReviews))
			bookReviews.POST("", auth.RequireAuth(), wrapBookIDParam(reviewHandler.CreateReview))
		}

		// 分类模块
		genres := v1.Group("/genres")
		{
			genres.GET("", bookHandler.ListGenres)
			genres.POST("", auth.RequireAuth(), auth.RequireAdmin(), bookHandler.CreateGenre)
		}

		// 购物车模块(需登录)
		cart := v1.Group("/cart")
		cart.Use(auth.RequireAuth())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:book_id", cartHandler.UpdateItem)
			cart.DELETE("/items/:book_id", cartHandler.RemoveItem)
		}

		// 订单模块(需登录)
		orders := v1.Group("/orders")
		orders.Use(auth.RequireAuth())
		{
			orders.POST("/checkout", orderHandler.Checkout)
			orders.GET("", orderHandler.ListMyOrders)
			orders.GET("/:id", orderHandler.GetOrder)
		}

		// 心愿单模块(需登录)
		wishlist := v1.Group("/wishlist")
		wishlist.Use(auth.RequireAuth())
		{
			wishlist.POST("", wishlistHandler.AddItem)
			wishlist.GET("", wishlistHandler.List)
			wishlist.DELETE("/:book_id", wishlistHandler.RemoveItem)
		}

		// 预订模块(需登录)
		prebooks := v1.Group("/prebooks")
		prebooks.Use(auth.RequireAuth())
		{
			prebooks.POST("", preBookHandler.Create)
			prebooks.GET("", preBookHandler.ListMine)
			prebooks.POST("/:id/cancel", preBookHandler.Cancel)
		}

		// 管理端(需管理员)
		admin := v1.Group("/admin")
		admin.Use(auth.RequireAuth(), auth.RequireAdmin())
		{
			admin.GET("/orders", orderHandler.ListAllOrders)
			admin.PUT("/orders/:id/status", orderHandler.UpdateOrderStatus)
			admin.GET("/reviews/pending", reviewHandler.ListPendingReviews)
			admin.PUT("/reviews/:id", reviewHandler.ModerateReview)
			admin.GET("/analytics/summary", adminHandler.GetSummary)
			admin.GET("/analytics/top-books", adminHandler.TopBooks)
			admin.GET("/analytics/revenue-by-day", adminHandler.RevenueByDay)
		}
	}
}

// wrapBookIDParam 将:id参数映射为评论Handler期望的:book_id
// gin要求同一前缀(/books/:id)的参数名一致,评论Handler内部用book_id取参
func wrapBookIDParam(h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: "book_id", Value: c.Param("id")})
		h(c)
	}
}
