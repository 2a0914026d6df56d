package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/hoopsheet/internal/auth"
	"github.com/mauv0809/hoopsheet/internal/database"
	"github.com/mauv0809/hoopsheet/internal/metrics"
	"github.com/mauv0809/hoopsheet/internal/team"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	demoEmail    = "demo@hoopsheet.local"
	demoPassword = "demo-password"
	numGames     = 12
	numTrainings = 6
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"MIGRATIONS_DIR":    "./migrations",
		"TURSO_PRIMARY_URL": "",
		"TURSO_AUTH_TOKEN":  "",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	for _, key := range []string{"DB_NAME", "JWT_SECRET"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedPlayer struct {
	name     string
	position string
	jersey   int
	// scoring skews the random lines so averages differ between players.
	scoring int
}

var roster = []seedPlayer{
	{"Avery Brooks", "PG", 3, 14},
	{"Jordan Lee", "SG", 11, 18},
	{"Casey Morgan", "SF", 23, 12},
	{"Riley Chen", "PF", 32, 9},
	{"Sam Okafor", "C", 45, 11},
	{"Taylor Diaz", "G", 5, 6},
	{"Morgan Hale", "F", 21, 5},
	{"Jamie Novak", "C", 50, 4},
}

var opponents = []string{"Hawks", "Comets", "Rivermen", "Lakeside", "Tigers", "Grizzlies"}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	db, dbTeardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"], cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer dbTeardown()

	// A private registry keeps the seeder's counters out of the default one.
	metricsSvc := metrics.NewService(prometheus.NewRegistry())
	authSvc := auth.NewService(db, metricsSvc, cfg["JWT_SECRET"], time.Hour)
	store := team.New(db, metricsSvc)

	session, err := authSvc.SignUp(ctx, demoEmail, demoPassword, "Demo Coach")
	if errors.Is(err, auth.ErrEmailTaken) {
		log.Info("Demo owner already exists, signing in")
		session, err = authSvc.SignIn(ctx, demoEmail, demoPassword)
	}
	if err != nil {
		log.Fatalf("Failed to prepare demo owner: %s", err)
	}
	owner := session.User.ID

	startTime := time.Now()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	playerIDs := make([]string, 0, len(roster))
	for _, p := range roster {
		position, jersey := p.position, p.jersey
		player, err := store.CreatePlayer(ctx, owner, team.PlayerInput{Name: p.name, Position: &position, JerseyNumber: &jersey})
		if err != nil {
			log.Fatalf("Failed to insert player %s: %s", p.name, err)
		}
		playerIDs = append(playerIDs, player.ID)
	}
	log.Info("Inserted roster", "players", len(playerIDs))

	firstDay := time.Now().AddDate(0, 0, -7*numGames).Truncate(24 * time.Hour)
	for i := 0; i < numTrainings; i++ {
		date := firstDay.AddDate(0, 0, 14*i+2).Add(18 * time.Hour)
		training, err := store.CreateEvent(ctx, owner, team.EventInput{
			Title: fmt.Sprintf("Practice %d", i+1),
			Type:  "training",
			Date:  date,
		})
		if err != nil {
			log.Fatalf("Failed to insert training: %s", err)
		}
		if err := seedAttendance(ctx, store, owner, training.ID, playerIDs, rng); err != nil {
			log.Fatalf("Failed to insert attendance: %s", err)
		}
	}

	for i := 0; i < numGames; i++ {
		opponent := opponents[i%len(opponents)]
		date := firstDay.AddDate(0, 0, 7*i).Add(19 * time.Hour)

		lines := make([]team.StatisticInput, 0, len(roster))
		teamScore := 0
		for j, p := range roster {
			if rng.Intn(10) == 0 {
				continue // sat out
			}
			line := team.StatisticInput{
				PlayerID: playerIDs[j],
				Points:   rng.Intn(p.scoring + 1),
				Rebounds: rng.Intn(9),
				Assists:  rng.Intn(6),
				Steals:   rng.Intn(3),
				Blocks:   rng.Intn(3),
			}
			teamScore += line.Points
			lines = append(lines, line)
		}
		opponentScore := teamScore + rng.Intn(21) - 10
		if opponentScore < 0 {
			opponentScore = 0
		}

		game, err := store.CreateEvent(ctx, owner, team.EventInput{
			Title:         "vs " + opponent,
			Type:          "game",
			Date:          date,
			Opponent:      &opponent,
			TeamScore:     &teamScore,
			OpponentScore: &opponentScore,
		})
		if err != nil {
			log.Fatalf("Failed to insert game: %s", err)
		}
		if _, err := store.UpsertStatisticsBatch(ctx, owner, game.ID, lines); err != nil {
			log.Fatalf("Failed to insert statistics: %s", err)
		}
		if err := seedAttendance(ctx, store, owner, game.ID, playerIDs, rng); err != nil {
			log.Fatalf("Failed to insert attendance: %s", err)
		}
		log.Info("Inserted game", "title", game.Title, "result", game.Result, "score", fmt.Sprintf("%d-%d", teamScore, opponentScore))
	}

	duration := time.Since(startTime)
	log.Info("Successfully seeded demo team.", "email", demoEmail, "password", demoPassword, "duration", duration)
	fmt.Println(session.Token)
}

func seedAttendance(ctx context.Context, store team.TeamStore, owner, eventID string, playerIDs []string, rng *rand.Rand) error {
	inputs := make([]team.AttendanceInput, 0, len(playerIDs))
	for _, id := range playerIDs {
		inputs = append(inputs, team.AttendanceInput{PlayerID: id, Present: rng.Intn(5) != 0})
	}
	_, err := store.UpsertAttendanceBatch(ctx, owner, eventID, inputs)
	return err
}
