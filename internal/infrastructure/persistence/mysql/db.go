package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/xiebiao/bookmall/internal/infrastructure/config"
	"github.com/xiebiao/bookmall/pkg/logger"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	// 开发环境打印SQL
	logLevel := gormlogger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 配置连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.L().Info("数据库连接成功", zap.String("host", cfg.Database.Host))

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&GenreModel{},
		&BookModel{},
		&CartModel{},
		&CartItemModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
		&WishlistItemModel{},
		&PreBookModel{},
	)
}

// UserModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UserModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Nickname  string         `gorm:"size:50;not null;comment:昵称"`
	Role      string         `gorm:"size:20;not null;default:user;comment:角色(user/admin)"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// GenreModel GORM分类模型
type GenreModel struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"uniqueIndex;size:50;not null;comment:分类名称"`
	Description string    `gorm:"size:200;comment:分类描述"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (GenreModel) TableName() string {
	return "genres"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN有唯一索引,防止重复
// 3. Stock是结账事务行锁的争用列
// 4. 添加复合索引优化列表查询性能
type BookModel struct {
	ID          uint           `gorm:"primaryKey"`
	ISBN        string         `gorm:"uniqueIndex;size:20;not null;comment:ISBN号"`
	Title       string         `gorm:"index:idx_search;size:200;not null;comment:书名"` // 搜索索引
	Author      string         `gorm:"index:idx_search;size:100;not null;comment:作者"` // 搜索索引
	GenreID     uint           `gorm:"index;not null;comment:分类ID"`
	Price       int64          `gorm:"index:idx_list;not null;comment:价格(分)"` // 排序索引
	Stock       int            `gorm:"default:0;comment:库存数量"`
	CoverURL    string         `gorm:"size:500;comment:封面图片URL"`
	Description string         `gorm:"type:text;comment:图书描述"`
	CreatedAt   time.Time      `gorm:"index:idx_list;comment:创建时间"` // 排序索引
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// CartModel GORM购物车模型
// 设计说明:每个用户恰好一个购物车,UserID唯一索引保证
type CartModel struct {
	ID        uint            `gorm:"primaryKey"`
	UserID    uint            `gorm:"uniqueIndex;not null;comment:用户ID"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"` // 一对多关联
	CreatedAt time.Time       `gorm:"comment:创建时间"`
	UpdatedAt time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel GORM购物车条目模型
// 设计说明:(cart_id, book_id)唯一索引,同一本书只有一行
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	CartID    uint      `gorm:"uniqueIndex:idx_cart_book;not null;comment:购物车ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_cart_book;index;not null;comment:图书ID"`
	Quantity  int       `gorm:"not null;comment:数量"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
// 3. Status使用int存储(节省空间,便于索引)
type OrderModel struct {
	ID        uint             `gorm:"primaryKey"`
	OrderNo   string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	UserID    uint             `gorm:"index;not null;comment:买家用户ID"`
	Total     int64            `gorm:"not null;comment:订单总金额(分)"`
	Status    int              `gorm:"index;type:tinyint;default:1;comment:订单状态(1已确认2已发货3已完成4已取消)"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"` // 一对多关联
	CreatedAt time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt time.Time        `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 设计说明:Title/Author/UnitPrice是下单时刻的快照,
// 后续改价、改名、下架都不影响历史订单
type OrderItemModel struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"index;not null;comment:订单ID"`
	BookID    uint   `gorm:"index;not null;comment:图书ID"`
	Title     string `gorm:"size:200;not null;comment:下单时书名快照"`
	Author    string `gorm:"size:100;not null;comment:下单时作者快照"`
	Quantity  int    `gorm:"not null;comment:购买数量"`
	UnitPrice int64  `gorm:"not null;comment:下单时单价(分)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ReviewModel GORM评论模型
// 设计说明:(user_id, book_id)唯一索引,每人每书一条
type ReviewModel struct {
	ID               uint      `gorm:"primaryKey"`
	UserID           uint      `gorm:"uniqueIndex:idx_user_book;not null;comment:用户ID"`
	BookID           uint      `gorm:"uniqueIndex:idx_user_book;index;not null;comment:图书ID"`
	Rating           int       `gorm:"type:tinyint;not null;comment:评分(1-5)"`
	Comment          string    `gorm:"type:text;comment:评论内容"`
	VerifiedPurchase bool      `gorm:"not null;default:false;comment:是否已购用户"`
	Status           int       `gorm:"index;type:tinyint;default:1;comment:状态(1待审核2已通过3已驳回)"`
	CreatedAt        time.Time `gorm:"comment:创建时间"`
	UpdatedAt        time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}

// WishlistItemModel GORM心愿单条目模型
type WishlistItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_wish_user_book;not null;comment:用户ID"`
	BookID    uint      `gorm:"uniqueIndex:idx_wish_user_book;index;not null;comment:图书ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}

// PreBookModel GORM缺货预订模型
// 设计说明:同一用户同一本书的waiting预订唯一性在应用层校验
// (状态流转后允许再次预订,数据库唯一索引表达不了这个约束)
type PreBookModel struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"index:idx_prebook_user_book;not null;comment:用户ID"`
	BookID     uint       `gorm:"index:idx_prebook_user_book;index:idx_prebook_book_status;not null;comment:图书ID"`
	Status     int        `gorm:"index:idx_prebook_book_status;type:tinyint;default:1;comment:状态(1等待2已通知3已取消)"`
	NotifiedAt *time.Time `gorm:"comment:通知时间"`
	CreatedAt  time.Time  `gorm:"comment:创建时间"`
	UpdatedAt  time.Time  `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (PreBookModel) TableName() string {
	return "pre_books"
}
