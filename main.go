// @title Skill Roadmap 后端 API
// @version 1.0
// @description 职业技能路线图平台的后端服务器。

// @host localhost:3001
// @BasePath /api

package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"skill_roadmap_backend/internal/app"
	"skill_roadmap_backend/internal/config"
	"skill_roadmap_backend/pkg/configwatcher"
	"skill_roadmap_backend/pkg/logger"
)

func main() {
	// 命令行参数
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 迁移完成后直接退出
	if *migrateOnly {
		log.Println("Database migration complete, exiting")
		return
	}

	// 配置文件存在时启用热更新
	configPath := filepath.Join("configs", "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		go configwatcher.WatchConfig(configPath, application.ReloadConfig)
	}

	application.Run()
}
