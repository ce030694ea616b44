package main

import (
	"github.com/DhavalSuthar-24/squadup/cmd"
	_ "github.com/DhavalSuthar-24/squadup/docs"
)

// @title SquadUp REST API
// @version 1.0
// @description Team management backend: events, RSVPs and invites.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
