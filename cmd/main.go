package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vda5050-bridge/internal/config"
	"vda5050-bridge/internal/di"
	"vda5050-bridge/internal/utils"
)

func main() {
	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		utils.Logger.Fatalf("Failed to load config: %v", err)
	}

	// DI 컨테이너 생성
	container, err := di.NewContainer(cfg)
	if err != nil {
		utils.Logger.Fatalf("Failed to create DI container: %v", err)
	}

	serverErr, err := container.Start()
	if err != nil {
		container.Cleanup()
		utils.Logger.Fatalf("Failed to start bridge: %v", err)
	}

	// 우아한 종료 처리
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		utils.Logger.Infof("🛑 Shutdown signal received: %s", sig)
	case err := <-serverErr:
		if err != nil {
			utils.Logger.Errorf("❌ HTTP server stopped: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	container.Shutdown(ctx)

	utils.Logger.Infof("✅ VDA5050 bridge shutdown completed")
}
