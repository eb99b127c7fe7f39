package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"

	"github.com/fastbreakhq/fastbreak/go/internal/draft/commissioner"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/orchestrator"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/outbox"
	"github.com/fastbreakhq/fastbreak/go/internal/draft/pick"
	"github.com/fastbreakhq/fastbreak/go/internal/fantasyteam"
	"github.com/fastbreakhq/fastbreak/go/internal/league"
	"github.com/fastbreakhq/fastbreak/go/internal/lineup"
	"github.com/fastbreakhq/fastbreak/go/internal/player"
	"github.com/fastbreakhq/fastbreak/go/internal/roster"
)

// Services holds the HTTP-facing services and the background orchestrator.
type Services struct {
	Pick         *pick.Service
	Commissioner *commissioner.Service
	Lineup       *lineup.Service
	Roster       *roster.Service
	Player       *player.Service
	FantasyTeam  *fantasyteam.Service
	League       *league.Service

	Orchestrator *orchestrator.Orchestrator
	OutboxRepo   *outbox.Repository

	LeagueRepo *league.Repository
	PickRepo   *pick.Repository
}

// setupServices wires repositories into apps and apps into services.
// Database layer -> Repository layer -> App layer -> Service layer.
func setupServices(database *sql.DB, clk clockwork.Clock) *Services {
	leagueRepo := league.NewRepository(database)
	pickRepo := pick.NewRepository(database)
	rosterRepo := roster.NewRepository(database)
	playerRepo := player.NewRepository(database)
	fantasyTeamRepo := fantasyteam.NewRepository(database)
	outboxRepo := outbox.NewRepository(database)
	lineupRepo := lineup.NewRepository(database)

	playerApp := player.NewApp(playerRepo)
	leagueApp := league.NewApp(leagueRepo)
	fantasyTeamApp := fantasyteam.NewApp(fantasyTeamRepo)
	rosterApp := roster.NewApp(rosterRepo, fantasyTeamRepo)

	pickApp := pick.NewApp(database, pickRepo, rosterRepo, playerRepo, leagueRepo, outboxRepo, clk)
	commissionerApp := commissioner.NewApp(database, leagueRepo, pickRepo, rosterRepo, outboxRepo, clk)
	lineupApp := lineup.NewApp(database, lineupRepo, leagueRepo, rosterRepo, outboxRepo, clk)

	strategy := orchestrator.NewBestAvailableStrategy(playerApp)
	orch := orchestrator.NewOrchestrator(database, leagueRepo, pickRepo, outboxRepo, pickApp, fantasyTeamApp, strategy, clk)

	// The commissioner's skip and resume paths drive the orchestrator
	// directly, so both run in this process.
	commissionerApp.AttachExecutor(orch)
	commissionerApp.AttachWaker(orch)

	return &Services{
		Pick:         pick.NewService(pickApp),
		Commissioner: commissioner.NewService(commissionerApp),
		Lineup:       lineup.NewService(lineupApp),
		Roster:       roster.NewService(rosterApp),
		Player:       player.NewService(playerApp),
		FantasyTeam:  fantasyteam.NewService(fantasyTeamApp),
		League:       league.NewService(leagueApp),
		Orchestrator: orch,
		OutboxRepo:   outboxRepo,
		LeagueRepo:   leagueRepo,
		PickRepo:     pickRepo,
	}
}
