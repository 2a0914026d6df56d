package team_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/mauv0809/hoopsheet/internal/database"
	"github.com/mauv0809/hoopsheet/internal/domain"
	"github.com/mauv0809/hoopsheet/internal/metrics"
	"github.com/mauv0809/hoopsheet/internal/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ownerA = "owner-a"
	ownerB = "owner-b"
)

// setupTestDB creates an in-memory SQLite database with two registered owners.
func setupTestDB(t *testing.T) (team.TeamStore, *sql.DB, *metrics.Mock) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	t.Cleanup(func() {
		dbTeardown()
		db.Close()
	})

	for _, id := range []string{ownerA, ownerB} {
		_, err := db.Exec(`INSERT INTO users (id, email, password_hash, created_at) VALUES (?, ?, 'x', 0)`, id, id+"@example.com")
		require.NoError(t, err)
		_, err = db.Exec(`INSERT INTO profiles (id, username, updated_at) VALUES (?, ?, 0)`, id, id)
		require.NoError(t, err)
	}

	m := metrics.NewMock()
	return team.New(db, m), db, m
}

func intPtr(v int) *int       { return &v }
func strPtr(s string) *string { return &s }

func mustPlayer(t *testing.T, store team.TeamStore, owner, name string) *domain.Player {
	t.Helper()
	p, err := store.CreatePlayer(context.Background(), owner, team.PlayerInput{Name: name})
	require.NoError(t, err)
	return p
}

func mustGame(t *testing.T, store team.TeamStore, owner, title string, date time.Time) *domain.Event {
	t.Helper()
	e, err := store.CreateEvent(context.Background(), owner, team.EventInput{
		Title: title,
		Type:  domain.EventGame,
		Date:  date,
	})
	require.NoError(t, err)
	return e
}

func TestPlayers_CRUD(t *testing.T) {
	store, _, m := setupTestDB(t)
	ctx := context.Background()

	created, err := store.CreatePlayer(ctx, ownerA, team.PlayerInput{
		Name:         "  Zoe  ",
		Position:     strPtr("guard"),
		JerseyNumber: intPtr(7),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Zoe", created.Name)
	assert.Equal(t, ownerA, created.OwnerID)

	mustPlayer(t, store, ownerA, "adam")
	mustPlayer(t, store, ownerB, "Other Team")

	players, err := store.ListPlayers(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "adam", players[0].Name, "players are ordered by name, case-insensitively")
	assert.Equal(t, "Zoe", players[1].Name)
	require.NotNil(t, players[1].JerseyNumber)
	assert.Equal(t, 7, *players[1].JerseyNumber)

	updated, err := store.UpdatePlayer(ctx, ownerA, created.ID, team.PlayerInput{Name: "Zoe B", JerseyNumber: intPtr(9)})
	require.NoError(t, err)
	assert.Equal(t, "Zoe B", updated.Name)
	assert.Nil(t, updated.Position)
	assert.Equal(t, 9, *updated.JerseyNumber)

	require.NoError(t, store.DeletePlayer(ctx, ownerA, created.ID))
	_, err = store.GetPlayer(ctx, ownerA, created.ID)
	assert.ErrorIs(t, err, team.ErrNotFound)

	assert.Equal(t, 5, m.StoreWrites("players"))
}

func TestPlayers_Validation(t *testing.T) {
	store, _, m := setupTestDB(t)
	ctx := context.Background()

	_, err := store.CreatePlayer(ctx, ownerA, team.PlayerInput{Name: "   "})
	assert.ErrorIs(t, err, team.ErrInvalidInput)

	_, err = store.CreatePlayer(ctx, ownerA, team.PlayerInput{Name: "Neg", JerseyNumber: intPtr(-1)})
	assert.ErrorIs(t, err, team.ErrInvalidInput)

	assert.Zero(t, m.StoreWrites("players"))
}

func TestEvents_FilterAndOrder(t *testing.T) {
	store, _, _ := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	mustGame(t, store, ownerA, "Second game", base.Add(48*time.Hour))
	mustGame(t, store, ownerA, "First game", base)
	_, err := store.CreateEvent(ctx, ownerA, team.EventInput{
		Title: "Practice",
		Type:  domain.EventTraining,
		Date:  base.Add(24 * time.Hour),
	})
	require.NoError(t, err)
	mustGame(t, store, ownerB, "Foreign game", base)

	all, err := store.ListEvents(ctx, ownerA, domain.EventFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"First game", "Practice", "Second game"}, []string{all[0].Title, all[1].Title, all[2].Title})

	games, err := store.ListEvents(ctx, ownerA, domain.EventFilter{Type: domain.EventGame})
	require.NoError(t, err)
	require.Len(t, games, 2)
	for _, g := range games {
		assert.Equal(t, domain.EventGame, g.Type)
	}
}

func TestEvents_ResultDerivedOnWrite(t *testing.T) {
	store, db, _ := setupTestDB(t)
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

	created, err := store.CreateEvent(ctx, ownerA, team.EventInput{
		Title:         "vs Hawks",
		Type:          domain.EventGame,
		Date:          date,
		Opponent:      strPtr("Hawks"),
		TeamScore:     intPtr(70),
		OpponentScore: intPtr(65),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultWin, created.Result)

	updated, err := store.UpdateEvent(ctx, ownerA, created.ID, team.EventInput{
		Title:         "vs Hawks",
		Type:          domain.EventGame,
		Date:          date,
		TeamScore:     intPtr(60),
		OpponentScore: intPtr(65),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultLoss, updated.Result)

	cleared, err := store.UpdateEvent(ctx, ownerA, created.ID, team.EventInput{
		Title:     "vs Hawks",
		Type:      domain.EventGame,
		Date:      date,
		TeamScore: intPtr(60),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultNone, cleared.Result)

	var stored sql.NullString
	require.NoError(t, db.QueryRow("SELECT result FROM events WHERE id = ?", created.ID).Scan(&stored))
	assert.False(t, stored.Valid)
}

func TestEvents_StaleResultIsReDerivedOnRead(t *testing.T) {
	store, db, _ := setupTestDB(t)
	ctx := context.Background()

	e, err := store.CreateEvent(ctx, ownerA, team.EventInput{
		Title:         "Draw",
		Type:          domain.EventGame,
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		TeamScore:     intPtr(50),
		OpponentScore: intPtr(50),
	})
	require.NoError(t, err)
	_, err = db.Exec("UPDATE events SET result = 'win' WHERE id = ?", e.ID)
	require.NoError(t, err)

	got, err := store.GetEvent(ctx, ownerA, e.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ResultDraw, got.Result)
}

func TestEvents_Validation(t *testing.T) {
	store, _, _ := setupTestDB(t)
	ctx := context.Background()
	date := time.Now()

	cases := []struct {
		name  string
		input team.EventInput
	}{
		{"missing title", team.EventInput{Type: domain.EventGame, Date: date}},
		{"unknown type", team.EventInput{Title: "x", Type: "scrimmage", Date: date}},
		{"missing date", team.EventInput{Title: "x", Type: domain.EventGame}},
		{"negative score", team.EventInput{Title: "x", Type: domain.EventGame, Date: date, TeamScore: intPtr(-2)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.CreateEvent(ctx, ownerA, tc.input)
			assert.ErrorIs(t, err, team.ErrInvalidInput)
		})
	}
}

func TestStatistics_UpsertUpdatesExistingPair(t *testing.T) {
	store, db, _ := setupTestDB(t)
	ctx := context.Background()
	p := mustPlayer(t, store, ownerA, "Ann")
	g := mustGame(t, store, ownerA, "Game", time.Now())

	first, err := store.UpsertStatistic(ctx, ownerA, team.StatisticInput{EventID: g.ID, PlayerID: p.ID, Points: 10})
	require.NoError(t, err)

	second, err := store.UpsertStatistic(ctx, ownerA, team.StatisticInput{EventID: g.ID, PlayerID: p.ID, Points: 14, Assists: 3})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "the natural key keeps the original record")
	assert.Equal(t, 14, second.Points)
	assert.Equal(t, 3, second.Assists)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM statistics").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStatistics_BatchAndFilter(t *testing.T) {
	store, _, m := setupTestDB(t)
	ctx := context.Background()
	ann := mustPlayer(t, store, ownerA, "Ann")
	bea := mustPlayer(t, store, ownerA, "Bea")
	g1 := mustGame(t, store, ownerA, "Game 1", time.Now())
	g2 := mustGame(t, store, ownerA, "Game 2", time.Now().Add(time.Hour))

	saved, err := store.UpsertStatisticsBatch(ctx, ownerA, g1.ID, []team.StatisticInput{
		{PlayerID: ann.ID, Points: 12, Rebounds: 4},
		{PlayerID: bea.ID, Points: 8, Steals: 2},
	})
	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, g1.ID, saved[0].EventID)

	_, err = store.UpsertStatistic(ctx, ownerA, team.StatisticInput{EventID: g2.ID, PlayerID: ann.ID, Points: 20})
	require.NoError(t, err)

	byEvent, err := store.ListStatistics(ctx, ownerA, domain.StatisticFilter{EventID: g1.ID})
	require.NoError(t, err)
	assert.Len(t, byEvent, 2)

	byPlayer, err := store.ListStatistics(ctx, ownerA, domain.StatisticFilter{PlayerID: ann.ID})
	require.NoError(t, err)
	require.Len(t, byPlayer, 2)
	assert.Equal(t, 12, byPlayer[0].Points)
	assert.Equal(t, 20, byPlayer[1].Points)

	both, err := store.ListStatistics(ctx, ownerA, domain.StatisticFilter{EventID: g2.ID, PlayerID: ann.ID})
	require.NoError(t, err)
	assert.Len(t, both, 1)

	assert.Equal(t, 2, m.StoreWrites("statistics"))
}

func TestStatistics_BatchIsAtomic(t *testing.T) {
	store, _, m := setupTestDB(t)
	ctx := context.Background()
	ann := mustPlayer(t, store, ownerA, "Ann")
	g := mustGame(t, store, ownerA, "Game", time.Now())

	_, err := store.UpsertStatisticsBatch(ctx, ownerA, g.ID, []team.StatisticInput{
		{PlayerID: ann.ID, Points: 12},
		{PlayerID: "missing-player", Points: 3},
	})
	assert.ErrorIs(t, err, team.ErrNotFound)

	stats, err := store.ListStatistics(ctx, ownerA, domain.StatisticFilter{})
	require.NoError(t, err)
	assert.Empty(t, stats)
	assert.Equal(t, 1, m.StoreWriteFailures("statistics"))
}

func TestStatistics_Validation(t *testing.T) {
	store, _, _ := setupTestDB(t)
	ctx := context.Background()
	ann := mustPlayer(t, store, ownerA, "Ann")
	g := mustGame(t, store, ownerA, "Game", time.Now())

	_, err := store.UpsertStatistic(ctx, ownerA, team.StatisticInput{EventID: g.ID, PlayerID: ann.ID, Blocks: -1})
	assert.ErrorIs(t, err, team.ErrInvalidInput)

	_, err = store.UpsertStatisticsBatch(ctx, ownerA, g.ID, []team.StatisticInput{{EventID: "other", PlayerID: ann.ID}})
	assert.ErrorIs(t, err, team.ErrInvalidInput)
}

func TestStatistics_ValidationNamesFirstNegativeCount(t *testing.T) {
	store, _, _ := setupTestDB(t)
	ctx := context.Background()
	ann := mustPlayer(t, store, ownerA, "Ann")
	g := mustGame(t, store, ownerA, "Game", time.Now())

	input := team.StatisticInput{EventID: g.ID, PlayerID: ann.ID, Rebounds: -2, Steals: -1, Blocks: -4}
	for i := 0; i < 20; i++ {
		_, err := store.UpsertStatistic(ctx, ownerA, input)
		require.ErrorIs(t, err, team.ErrInvalidInput)
		assert.Contains(t, err.Error(), "rebounds must not be negative")
	}
}

func TestAttendance_Upsert(t *testing.T) {
	store, _, _ := setupTestDB(t)
	ctx := context.Background()
	ann := mustPlayer(t, store, ownerA, "Ann")
	bea := mustPlayer(t, store, ownerA, "Bea")
	g := mustGame(t, store, ownerA, "Game", time.Now())

	_, err := store.UpsertAttendanceBatch(ctx, ownerA, g.ID, []team.AttendanceInput{
		{PlayerID: ann.ID, Present: true},
		{PlayerID: bea.ID, Present: false},
	})
	require.NoError(t, err)

	rec, err := store.UpsertAttendance(ctx, ownerA, team.AttendanceInput{EventID: g.ID, PlayerID: bea.ID, Present: true})
	require.NoError(t, err)
	assert.True(t, rec.Present)

	records, err := store.ListAttendance(ctx, ownerA, domain.AttendanceFilter{EventID: g.ID})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.True(t, r.Present, "player %s should be present", r.PlayerID)
	}
}

func TestDeletePlayer_CascadesStatisticsAndAttendance(t *testing.T) {
	store, _, _ := setupTestDB(t)
	ctx := context.Background()
	ann := mustPlayer(t, store, ownerA, "Ann")
	bea := mustPlayer(t, store, ownerA, "Bea")
	g := mustGame(t, store, ownerA, "Game", time.Now())

	_, err := store.UpsertStatisticsBatch(ctx, ownerA, g.ID, []team.StatisticInput{
		{PlayerID: ann.ID, Points: 5},
		{PlayerID: bea.ID, Points: 7},
	})
	require.NoError(t, err)
	_, err = store.UpsertAttendance(ctx, ownerA, team.AttendanceInput{EventID: g.ID, PlayerID: ann.ID, Present: true})
	require.NoError(t, err)

	require.NoError(t, store.DeletePlayer(ctx, ownerA, ann.ID))

	stats, err := store.ListStatistics(ctx, ownerA, domain.StatisticFilter{})
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, bea.ID, stats[0].PlayerID)

	attendance, err := store.ListAttendance(ctx, ownerA, domain.AttendanceFilter{})
	require.NoError(t, err)
	assert.Empty(t, attendance)
}

func TestDeletes_CascadeWithoutForeignKeys(t *testing.T) {
	store, db, _ := setupTestDB(t)
	ctx := context.Background()
	_, err := db.Exec("PRAGMA foreign_keys = OFF")
	require.NoError(t, err)

	ann := mustPlayer(t, store, ownerA, "Ann")
	bea := mustPlayer(t, store, ownerA, "Bea")
	g1 := mustGame(t, store, ownerA, "Game 1", time.Now())
	g2 := mustGame(t, store, ownerA, "Game 2", time.Now())
	for _, g := range []*domain.Event{g1, g2} {
		_, err = store.UpsertStatisticsBatch(ctx, ownerA, g.ID, []team.StatisticInput{{PlayerID: ann.ID, Points: 5}, {PlayerID: bea.ID, Points: 3}})
		require.NoError(t, err)
		_, err = store.UpsertAttendanceBatch(ctx, ownerA, g.ID, []team.AttendanceInput{{PlayerID: ann.ID, Present: true}, {PlayerID: bea.ID, Present: true}})
		require.NoError(t, err)
	}

	require.NoError(t, store.DeletePlayer(ctx, ownerA, ann.ID))
	require.NoError(t, store.DeleteEvent(ctx, ownerA, g1.ID))

	var statistics, attendance int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM statistics").Scan(&statistics))
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM attendance").Scan(&attendance))
	assert.Equal(t, 1, statistics, "only Bea's line for game 2 is left")
	assert.Equal(t, 1, attendance)
}

func TestDeleteEvent_CascadesStatistics(t *testing.T) {
	store, _, _ := setupTestDB(t)
	ctx := context.Background()
	ann := mustPlayer(t, store, ownerA, "Ann")
	g := mustGame(t, store, ownerA, "Game", time.Now())

	_, err := store.UpsertStatistic(ctx, ownerA, team.StatisticInput{EventID: g.ID, PlayerID: ann.ID, Points: 5})
	require.NoError(t, err)

	require.NoError(t, store.DeleteEvent(ctx, ownerA, g.ID))

	stats, err := store.ListStatistics(ctx, ownerA, domain.StatisticFilter{})
	require.NoError(t, err)
	assert.Empty(t, stats)

	assert.ErrorIs(t, store.DeleteEvent(ctx, ownerA, g.ID), team.ErrNotFound)
}

func TestOwnerScoping(t *testing.T) {
	store, _, _ := setupTestDB(t)
	ctx := context.Background()
	ann := mustPlayer(t, store, ownerA, "Ann")
	g := mustGame(t, store, ownerA, "Game", time.Now())

	_, err := store.GetPlayer(ctx, ownerB, ann.ID)
	assert.ErrorIs(t, err, team.ErrNotFound)

	_, err = store.UpdatePlayer(ctx, ownerB, ann.ID, team.PlayerInput{Name: "Stolen"})
	assert.ErrorIs(t, err, team.ErrNotFound)

	assert.ErrorIs(t, store.DeletePlayer(ctx, ownerB, ann.ID), team.ErrNotFound)
	assert.ErrorIs(t, store.DeleteEvent(ctx, ownerB, g.ID), team.ErrNotFound)

	_, err = store.UpsertStatistic(ctx, ownerB, team.StatisticInput{EventID: g.ID, PlayerID: ann.ID, Points: 99})
	assert.ErrorIs(t, err, team.ErrNotFound)

	_, err = store.UpsertAttendance(ctx, ownerB, team.AttendanceInput{EventID: g.ID, PlayerID: ann.ID, Present: true})
	assert.ErrorIs(t, err, team.ErrNotFound)

	players, err := store.ListPlayers(ctx, ownerB)
	require.NoError(t, err)
	assert.Empty(t, players)

	stats, err := store.ListStatistics(ctx, ownerA, domain.StatisticFilter{})
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestProfiles(t *testing.T) {
	store, _, _ := setupTestDB(t)
	ctx := context.Background()

	p, err := store.GetProfile(ctx, ownerA)
	require.NoError(t, err)
	assert.Equal(t, ownerA, p.Username)

	updated, err := store.UpdateProfile(ctx, ownerA, team.ProfileInput{Username: "coach", AvatarURL: strPtr("https://example.com/a.png")})
	require.NoError(t, err)
	assert.Equal(t, "coach", updated.Username)
	require.NotNil(t, updated.AvatarURL)

	assert.Nil(t, updated.SlackChannelID)

	updated, err = store.UpdateProfile(ctx, ownerA, team.ProfileInput{Username: "coach", SlackChannelID: strPtr(" C0RECAPS ")})
	require.NoError(t, err)
	require.NotNil(t, updated.SlackChannelID)
	assert.Equal(t, "C0RECAPS", *updated.SlackChannelID)

	updated, err = store.UpdateProfile(ctx, ownerA, team.ProfileInput{Username: "coach", SlackChannelID: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.SlackChannelID, "a blank channel disables recaps")

	_, err = store.UpdateProfile(ctx, ownerA, team.ProfileInput{Username: " "})
	assert.ErrorIs(t, err, team.ErrInvalidInput)

	_, err = store.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, team.ErrNotFound)
}
