// seed 向图书目录写入一批示例图书
//
// 用法：
//
//	go run ./cmd/seed          # 目录为空时写入
//	go run ./cmd/seed -force   # 不管是否已有数据都追加写入
//
// 数据经过领域服务（book.Service）写入，与页面新建走同一套校验
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/orm"
	"github.com/xiebiao/bookcatalog/pkg/logger"
)

type seedBook struct {
	title  string
	author string
	genre  string
	year   int // 0表示未知
}

var catalog = []seedBook{
	{"The Go Programming Language", "Alan A. A. Donovan", "Programming", 2015},
	{"Concurrency in Go", "Katherine Cox-Buday", "Programming", 2017},
	{"The Pragmatic Programmer", "Andrew Hunt", "Programming", 1999},
	{"Designing Data-Intensive Applications", "Martin Kleppmann", "Computer Science", 2017},
	{"Dune", "Frank Herbert", "Science Fiction", 1965},
	{"The Left Hand of Darkness", "Ursula K. Le Guin", "Science Fiction", 1969},
	{"Pride and Prejudice", "Jane Austen", "Romance", 1813},
	{"One Hundred Years of Solitude", "Gabriel Garcia Marquez", "Literary Fiction", 1967},
	{"The Name of the Rose", "Umberto Eco", "Mystery", 1980},
	{"Sapiens", "Yuval Noah Harari", "History", 2011},
	{"A Brief History of Time", "Stephen Hawking", "Science", 1988},
	{"Meditations", "Marcus Aurelius", "Philosophy", 0},
}

func main() {
	force := flag.Bool("force", false, "目录非空时也写入")
	flag.Parse()

	if err := run(*force); err != nil {
		log.Fatal(err)
	}
}

// run 初始化配置、日志与数据库后写入示例数据
func run(force bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	zlog, err := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer func() { _ = zlog.Sync() }()

	db, err := orm.NewDB(cfg, zlog)
	if err != nil {
		return fmt.Errorf("初始化数据库失败: %w", err)
	}
	defer func() { _ = orm.Close(db) }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err = seed(ctx, orm.NewBookRepository(db), force, zlog)
	return err
}

// seed 写入catalog，返回成功写入的数量
// 目录非空且未指定force时不写入；单本写入失败只记日志
func seed(ctx context.Context, repo book.Repository, force bool, zlog *zap.Logger) (int, error) {
	total, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("查询图书总数失败: %w", err)
	}
	if total > 0 && !force {
		zlog.Info("目录已有数据，跳过写入（使用-force强制写入）", zap.Int64("total", total))
		return 0, nil
	}

	svc := book.NewService(repo)
	inserted := 0
	for _, s := range catalog {
		b, err := svc.PublishBook(ctx, s.fields())
		if err != nil {
			zlog.Error("写入图书失败", zap.String("title", s.title), zap.Error(err))
			continue
		}
		inserted++
		zlog.Debug("写入图书", zap.Uint("id", b.ID), zap.String("title", b.Title))
	}

	zlog.Info("示例数据写入完成", zap.Int("inserted", inserted), zap.Int("skipped", len(catalog)-inserted))
	return inserted, nil
}

// fields 转为表单字段（与页面提交的值形式一致）
func (s seedBook) fields() book.Fields {
	year := ""
	if s.year > 0 {
		year = strconv.Itoa(s.year)
	}
	return book.Fields{
		Title:  &s.title,
		Author: &s.author,
		Genre:  &s.genre,
		Year:   &year,
	}
}
