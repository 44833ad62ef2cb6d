package routes

import (
	"chipsplit/controllers/host"
	"chipsplit/controllers/player"
	"chipsplit/controllers/session"
	"chipsplit/controllers/settlement"
	"chipsplit/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	app.Post("/host/info", host.HostInfo)
	hostroutes := app.Group("/host", middlewares.MasterAuth())
	hostroutes.Post("/register", host.RegisterHost)

	sessionroutes := app.Group("/session", middlewares.HostAuthMiddleware)
	sessionroutes.Post("/create", session.CreateSession)
	sessionroutes.Post("/info", session.SessionInfo)
	sessionroutes.Post("/close", session.CloseSession)

	sessionroutes.Post("/players/join", player.JoinSession)
	sessionroutes.Post("/players/buyin", player.RecordBuyIn)
	sessionroutes.Post("/players/cashout", player.RecordCashOut)
	sessionroutes.Post("/players/balance", player.CheckPlayerBalance)

	settleroutes := app.Group("/settlement", middlewares.HostAuthMiddleware)
	settleroutes.Post("/compute", settlement.ComputePlan)
	settleroutes.Post("/compare", settlement.ComparePlans)
	settleroutes.Post("/validate", settlement.ValidatePlan)
	settleroutes.Post("/plan", settlement.PlanInfo)
}
