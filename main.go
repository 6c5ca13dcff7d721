package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/adilet/campaign-sender/controller"
	"github.com/adilet/campaign-sender/dao"
	_ "github.com/adilet/campaign-sender/docs"
	"github.com/adilet/campaign-sender/gateway"
	"github.com/adilet/campaign-sender/log"
	"github.com/adilet/campaign-sender/scheduler"
	"github.com/adilet/campaign-sender/service"
	"github.com/adilet/campaign-sender/util"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// @title Campaign sender HTTP API
// @description Bulk-messaging campaign scheduling and execution service

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Error.Println(err)
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	//create db client
	dbClient, err := dao.GetClient(util.GetEnv("DB_PATH", "campaigns.db"))
	if err != nil {
		log.Fatal(err)
	}

	campaignDao := dao.NewCampaignDao(dbClient)
	contactListDao := dao.NewContactListDao(dbClient)
	contactDao := dao.NewContactDao(dbClient)
	templateDao := dao.NewTemplateDao(dbClient)
	mediaDao := dao.NewMediaDao(dbClient)
	sessionDao := dao.NewSessionDao(dbClient)

	//create gateway client
	gatewayClient := gateway.NewClient(
		util.GetEnv("GW_URL", "http://localhost:3000"),
		util.GetEnv("GW_KEY", ""),
		util.GetEnvAsInt("GW_TPS", 10))

	bus := service.NewBus()
	service.NewWebhookNotifier(util.GetEnv("WEB_HOOK", "")).Start(bus)

	namePlaceholder := util.GetEnv("NAME_PLACEHOLDER", "{name}")

	runner := service.NewRunner(
		campaignDao,
		contactDao,
		templateDao,
		mediaDao,
		sessionDao,
		gatewayClient,
		bus,
		namePlaceholder,
		util.GetEnvAsInt("MIN_SEND_DELAY_MS", 3000),
		util.GetEnvAsInt("MAX_SEND_DELAY_MS", 10000),
	)

	campaignSched := scheduler.New(campaignDao, runner)

	campaignService := service.NewService(
		campaignDao,
		contactListDao,
		contactDao,
		templateDao,
		mediaDao,
		sessionDao,
		campaignSched,
		namePlaceholder,
		util.GetEnv("PHONE_MASK", "\\d{10,15}"),
	)

	//register triggers for persisted campaigns, overdue ones fire right away
	log.WarnIfErr("Scheduler initialization failed, pending campaigns are not registered:", campaignSched.Initialize())

	//attach http handlers
	e := echo.New()
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.HideBanner = true
	e.Use(middleware.BodyLimit("1M"))

	bindRoutes(e, campaignService)

	go func() {
		log.Fatal(e.Start(":" + util.GetEnv("HTTP_PORT", "8080")))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	campaignSched.StopAll()
}

func bindRoutes(e *echo.Echo, srv service.Service) {

	e.POST("/campaigns", controller.GetCreateCampaignFunc(srv))
	e.GET("/campaigns/:id", controller.GetCheckCampaignFunc(srv))
	e.DELETE("/campaigns/:id", controller.GetDeleteCampaignFunc(srv))
	e.POST("/campaigns/:id/resume", controller.GetResumeCampaignFunc(srv))

	e.POST("/contact-lists", controller.GetCreateContactListFunc(srv))
	e.POST("/templates", controller.GetCreateTemplateFunc(srv))
	e.POST("/media", controller.GetRegisterMediaFunc(srv))
	e.PUT("/sessions", controller.GetRegisterSessionFunc(srv))
}
