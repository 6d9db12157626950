package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Rushant-123/ui-learnings/internal/curriculum"
	"github.com/Rushant-123/ui-learnings/internal/mockapi"
)

// 本地开发用内存态 API 服务：无数据库、无 Redis、无对象存储，
// 任意 Bearer Token 即可登录，进程重启后数据清空
func main() {
	addr := flag.String("addr", ":3001", "监听地址")
	curriculumPath := flag.String("curriculum", "data/ux_ui_curriculum.json", "课程大纲文件路径")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	curr, err := curriculum.LoadFile(*curriculumPath)
	if err != nil {
		logger.Fatal("加载课程大纲失败", zap.Error(err))
	}

	srv := mockapi.NewServer(mockapi.NewStore(), curr)
	httpServer := &http.Server{
		Addr:         *addr,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Info("Mock API 服务启动",
		zap.String("addr", *addr),
		zap.Int("weeks", curr.TotalWeeks()),
		zap.Int("tasks", curr.TotalTasks()),
		zap.String("demo_account", "demo@example.com / demo123"),
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("服务异常退出", zap.Error(err))
	}
}
