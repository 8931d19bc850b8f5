package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vda5050-bridge/internal/config"
	"vda5050-bridge/internal/database"
	"vda5050-bridge/internal/handlers"
	"vda5050-bridge/internal/message"
	"vda5050-bridge/internal/messaging"
	"vda5050-bridge/internal/metrics"
	bridgeredis "vda5050-bridge/internal/redis"
	"vda5050-bridge/internal/repository"
	"vda5050-bridge/internal/service"
	"vda5050-bridge/internal/utils"
	"vda5050-bridge/internal/vda5050"

	goredis "github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// activeOrderTTL 오래된 활성 오더가 검증 컨텍스트로 남지 않도록 만료
const activeOrderTTL = 24 * time.Hour

// Container 의존성 주입 컨테이너
type Container struct {
	Config  *config.Config
	Metrics *metrics.Metrics
	Topics  messaging.Topics

	// Infra
	DB          *gorm.DB
	Redis       *goredis.Client
	MQTT        *messaging.MQTTClient
	Connections *utils.StatusCache

	// Business
	Generator *message.Generator
	Publisher *messaging.Publisher
	Service   *service.BridgeService

	// Transport
	Router     *messaging.Router
	Subscriber *messaging.Subscriber
	HTTP       *echo.Echo
}

// NewContainer 새로운 컨테이너 생성
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	// 1. 기본 서비스들 초기화
	if err := container.initCoreServices(); err != nil {
		return nil, fmt.Errorf("failed to init core services: %w", err)
	}

	// 2. 인프라 서비스들 초기화
	if err := container.initInfraServices(); err != nil {
		container.Cleanup()
		return nil, fmt.Errorf("failed to init infra services: %w", err)
	}

	// 3. 비즈니스 서비스들 초기화
	container.initBusinessServices()

	// 4. 핸들러들 초기화
	container.initHandlers()

	return container, nil
}

// initCoreServices 로거, 메트릭, 토픽 초기화
func (c *Container) initCoreServices() error {
	utils.SetupLogger(c.Config.LogLevel)
	c.Metrics = metrics.New()
	c.Connections = utils.NewStatusCache(time.Hour)

	topics, err := messaging.NewTopics(c.Config.MQTTInterfaceName, vda5050.ProtocolVersion)
	if err != nil {
		return err
	}
	c.Topics = topics
	return nil
}

// initInfraServices Postgres, Redis, MQTT 연결
func (c *Container) initInfraServices() error {
	db, err := database.NewPostgresDB(c.Config)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	c.DB = db
	utils.Logger.Infof("✅ Database connected")

	redisClient, err := bridgeredis.NewRedisClient(c.Config)
	if err != nil {
		return fmt.Errorf("redis init failed: %w", err)
	}
	c.Redis = redisClient
	utils.Logger.Infof("✅ Redis connected")

	c.Generator = message.NewGenerator(bridgeredis.NewHeaderSequencer(redisClient))

	mqttClient, err := messaging.NewMQTTClient(c.Config, c.Topics, c.Generator, c.Metrics)
	if err != nil {
		return fmt.Errorf("mqtt init failed: %w", err)
	}
	c.MQTT = mqttClient
	return nil
}

// initBusinessServices 발행자, 저장소, 브리지 서비스 초기화
func (c *Container) initBusinessServices() {
	c.Publisher = messaging.NewPublisher(c.MQTT, c.Topics, c.Config.MQTTQoS, c.Metrics)
	c.Service = service.NewBridgeService(
		c.Publisher,
		bridgeredis.NewOrderStore(c.Redis, activeOrderTTL),
		repository.NewArchiveRepository(c.DB),
		c.Generator,
		c.Metrics,
		c.Connections,
	).WithBridgeIdentity(c.Config.BridgeManufacturer, c.Config.BridgeSerialNumber)
}

// initHandlers MQTT 라우터와 HTTP 서버 초기화
func (c *Container) initHandlers() {
	c.Router = messaging.NewRouter(c.Topics, c.Service, c.Metrics, c.Config.StrictDecode, c.Config.Timeout)
	c.Subscriber = messaging.NewSubscriber(c.MQTT, c.Router, c.Topics, c.Config.MQTTQoS)

	api := handlers.NewAPIHandler(c.Service, c.Metrics, c.Config.StrictDecode, c.MQTT.IsConnected)
	c.HTTP = handlers.NewServer(api)
}

// Start 토픽 구독 후 HTTP 서버 시작. errCh 로 서버 종료 에러 전달
func (c *Container) Start() (<-chan error, error) {
	if err := c.Subscriber.SubscribeAll(); err != nil {
		return nil, err
	}

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + c.Config.HTTPPort
		utils.Logger.Infof("🌐 HTTP server listening on %s", addr)
		if err := c.HTTP.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	utils.Logger.Infof("🚀 VDA5050 bridge started")
	return errCh, nil
}

// Shutdown HTTP 서버 종료 후 리소스 정리
func (c *Container) Shutdown(ctx context.Context) {
	if c.HTTP != nil {
		if err := c.HTTP.Shutdown(ctx); err != nil {
			utils.Logger.Errorf("❌ HTTP shutdown: %v", err)
		}
	}
	c.Cleanup()
}

// Cleanup 리소스 정리
func (c *Container) Cleanup() {
	if c.Service != nil {
		c.Service.Wait()
	}
	if c.MQTT != nil {
		c.MQTT.Disconnect(250)
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			utils.Logger.Errorf("❌ Redis close: %v", err)
		}
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if c.Connections != nil {
		c.Connections.Stop()
	}
	utils.Logger.Infof("Container cleanup completed")
}
