package app

import (
	"hash/maphash"
	"math/rand/v2"
	"strings"

	"github.com/pssnyder/MinesweeperAI/internal/config"
	"github.com/pssnyder/MinesweeperAI/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	auth := handlers.NewAuth(a.logger, a.db, a.cookies, a.jwt)
	game := handlers.NewGameHandler(a.logger, a.db, a.ws, createRand())

	base := strings.TrimSuffix(config.BasePath(), "/")

	a.router.HandleFunc("POST "+base+"/v1/register", auth.Register)
	a.router.HandleFunc("POST "+base+"/v1/login", auth.Login)
	a.router.HandleFunc("POST "+base+"/v1/logout", auth.Logout)
	a.router.HandleFunc("GET "+base+"/v1/status", auth.Status)

	a.router.HandleFunc("POST "+base+"/v1/games", game.Create)
	a.router.HandleFunc("GET "+base+"/v1/games/{id}", game.Fetch)
	a.router.HandleFunc("POST "+base+"/v1/games/{id}/step", game.Step)
	a.router.HandleFunc("POST "+base+"/v1/games/{id}/autoplay", game.Autoplay)
	a.router.HandleFunc("GET "+base+"/v1/games/{id}/watch", game.Watch)

	a.router.HandleFunc("GET "+base+"/v1/records", game.Records)
}
