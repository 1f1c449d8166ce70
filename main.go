package main

import (
	"github.com/marianaakuma/Projeto-Full-Stack1/config"
	"github.com/marianaakuma/Projeto-Full-Stack1/models"
	"github.com/marianaakuma/Projeto-Full-Stack1/routes"
	"github.com/marianaakuma/Projeto-Full-Stack1/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
