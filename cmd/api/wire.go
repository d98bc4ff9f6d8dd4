//go:build wireinject
// +build wireinject

// Wire依赖注入配置
//
// Wire在编译期生成依赖组装代码:
//
//	wire gen ./cmd/api  →  生成wire_gen.go
//
// main.go当前使用手动注入,本文件维护等价的依赖图,
// 依赖链复杂到手动维护吃力时切换到wire_gen.go即可
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appadmin "github.com/xiebiao/bookmall/internal/application/admin"
	appbook "github.com/xiebiao/bookmall/internal/application/book"
	appcart "github.com/xiebiao/bookmall/internal/application/cart"
	apporder "github.com/xiebiao/bookmall/internal/application/order"
	appprebook "github.com/xiebiao/bookmall/internal/application/prebook"
	appreview "github.com/xiebiao/bookmall/internal/application/review"
	appuser "github.com/xiebiao/bookmall/internal/application/user"
	appwishlist "github.com/xiebiao/bookmall/internal/application/wishlist"
	"github.com/xiebiao/bookmall/internal/domain/book"
	"github.com/xiebiao/bookmall/internal/domain/cart"
	"github.com/xiebiao/bookmall/internal/domain/order"
	"github.com/xiebiao/bookmall/internal/domain/prebook"
	"github.com/xiebiao/bookmall/internal/domain/user"
	"github.com/xiebiao/bookmall/internal/infrastructure/config"
	"github.com/xiebiao/bookmall/internal/infrastructure/payment"
	"github.com/xiebiao/bookmall/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookmall/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookmall/internal/interface/http/handler"
	"github.com/xiebiao/bookmall/internal/interface/http/middleware"
	"github.com/xiebiao/bookmall/pkg/jwt"
	"github.com/xiebiao/bookmall/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewGenreRepository,
	mysql.NewOrderRepository,
	mysql.NewCartRepository,
	mysql.NewReviewRepository,
	mysql.NewWishlistRepository,
	mysql.NewPreBookRepository,
	mysql.NewAnalyticsRepository,
	mysql.NewTxManager,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewManageBookUseCase,
	appbook.NewGenreUseCase,
	appcart.NewCartUseCase,
	apporder.NewOrderQueryUseCase,
	appreview.NewReviewUseCase,
	appwishlist.NewWishlistUseCase,
	appprebook.NewPreBookUseCase,
	appadmin.NewAnalyticsUseCase,
	provideSetStockUseCase,
	provideCheckoutUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
	handler.NewReviewHandler,
	handler.NewWishlistHandler,
	handler.NewPreBookHandler,
	handler.NewAdminHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建会话存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// providePublisher 按配置创建事件发布器(未启用时为nil)
func providePublisher(cfg *config.Config) (*mq.Publisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

// provideGateway 创建带熔断的支付网关
func provideGateway(cfg *config.Config) order.PaymentGateway {
	return payment.NewBreakerGateway(payment.NewMockGateway(), cfg.Payment)
}

// provideSetStockUseCase 组装补货用例(发布接口做nil归一化)
func provideSetStockUseCase(
	bookRepo book.Repository,
	preBookRepo prebook.Repository,
	txManager *mysql.TxManager,
	publisher *mq.Publisher,
) *appbook.SetStockUseCase {
	return appbook.NewSetStockUseCase(bookRepo, preBookRepo, txManager, bookEventPublisher(publisher))
}

// provideCheckoutUseCase 组装结账用例
func provideCheckoutUseCase(
	cfg *config.Config,
	cartRepo cart.Repository,
	bookRepo book.Repository,
	orderRepo order.Repository,
	gateway order.PaymentGateway,
	txManager *mysql.TxManager,
	publisher *mq.Publisher,
) *apporder.CheckoutUseCase {
	return apporder.NewCheckoutUseCase(
		cartRepo, bookRepo, orderRepo, gateway, txManager,
		orderEventPublisher(publisher), cfg.Checkout.LockTimeout,
	)
}

// provideGinEngine 创建Gin引擎并注册路由
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	bookHandler *handler.BookHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	reviewHandler *handler.ReviewHandler,
	wishlistHandler *handler.WishlistHandler,
	preBookHandler *handler.PreBookHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
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

	return r
}

// InitializeApp 初始化整个应用(Wire Injector)
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		providePublisher,
		provideGateway,
		provideGinEngine,
	)
	return nil, nil
}
