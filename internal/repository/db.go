package repository

import (
	"fmt"
	"log"

	"github.com/user/cinetalk/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	// TranslateError 让唯一索引冲突统一转成 gorm.ErrDuplicatedKey，
	// 反应的并发竞争靠它判定输家
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// Auto Migrate
	err = db.AutoMigrate(
		&model.User{},
		&model.Movie{},
		&model.Thread{},
		&model.Comment{},
		&model.Reaction{},
	)
	if err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}
	log.Println("数据库迁移完成")

	return db, nil
}

// Repositories 仓库集合
type Repositories struct {
	DB       *gorm.DB
	User     *UserRepository
	Movie    *MovieRepository
	Thread   *ThreadRepository
	Comment  *CommentRepository
	Reaction *ReactionRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		User:     NewUserRepository(db),
		Movie:    NewMovieRepository(db),
		Thread:   NewThreadRepository(db),
		Comment:  NewCommentRepository(db),
		Reaction: NewReactionRepository(db),
	}
}
