package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/saeid-a/CoachIntake/internal/models"
	"github.com/saeid-a/CoachIntake/internal/repository"
)

var (
	testDBOnce sync.Once
	testDBPool *pgxpool.Pool
	testDBErr  error
)

func TestIntakeServiceConversationPersistsAcrossMessages(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationIntakeService(pool)

	userID := createTestUser(t, ctx, pool)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, userID) })

	first, err := service.Submit(ctx, userID, "user", uuid.Nil, "29F, 5'5\", I do yoga twice a week")
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	if first.Ready {
		t.Fatal("expected weight and goal to be missing after first message")
	}

	second, err := service.Submit(ctx, userID, "user", first.SessionID, "60 kg, goal: slim")
	if err != nil {
		t.Fatalf("second Submit: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Fatalf("expected same session, got %s and %s", first.SessionID, second.SessionID)
	}
	if !second.Ready {
		t.Fatalf("expected ready after second message, missing %v", missingFieldNames(second.Missing))
	}

	latest, err := repository.NewIntakeRepository(pool).LatestBySession(ctx, userID, first.SessionID)
	if err != nil {
		t.Fatalf("LatestBySession: %v", err)
	}
	if latest.Parsed.Age == nil || *latest.Parsed.Age != 29 {
		t.Fatalf("expected stored age 29, got %v", latest.Parsed.Age)
	}
	if !reflect.DeepEqual(latest.Parsed.Activity, []string{"yoga"}) {
		t.Fatalf("expected stored activities [yoga], got %v", latest.Parsed.Activity)
	}
	if !latest.Ready || len(latest.Missing) != 0 {
		t.Fatalf("expected stored ready message, got %+v", latest)
	}

	profile, err := repository.NewUserProfileRepository(pool).GetByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if profile.WeightKG == nil || *profile.WeightKG != 60 {
		t.Fatalf("expected profile weight 60, got %v", profile.WeightKG)
	}
	if profile.WorkoutFrequency == nil || *profile.WorkoutFrequency != 2 {
		t.Fatalf("expected profile frequency 2, got %v", profile.WorkoutFrequency)
	}
	if profile.Goals == nil || !reflect.DeepEqual(*profile.Goals, []string{models.GoalWeightLoss}) {
		t.Fatalf("expected profile goals [weight_loss], got %v", profile.Goals)
	}
	if !profile.OnboardingComplete {
		t.Fatal("expected onboarding to be complete")
	}

	messages, total, err := service.History(ctx, userID, "user", first.SessionID, 1, 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if total != 2 || len(messages) != 2 || messages[0].Content != "60 kg, goal: slim" {
		t.Fatalf("expected newest-first history of 2, got %d/%+v", total, messages)
	}
}

func TestIntakeServiceConcurrentMessagesKeepEveryField(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationIntakeService(pool)

	userID := createTestUser(t, ctx, pool)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, userID) })

	first, err := service.Submit(ctx, userID, "user", uuid.Nil, "29F")
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, text := range []string{"165 cm", "60 kg"} {
		wg.Add(1)
		go func(text string) {
			defer wg.Done()
			_, err := service.Submit(ctx, userID, "user", first.SessionID, text)
			errs <- err
		}(text)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Submit: %v", err)
		}
	}

	latest, err := repository.NewIntakeRepository(pool).LatestBySession(ctx, userID, first.SessionID)
	if err != nil {
		t.Fatalf("LatestBySession: %v", err)
	}
	if latest.Parsed.HeightCM == nil || latest.Parsed.WeightKG == nil || latest.Parsed.Age == nil {
		t.Fatalf("expected age, height and weight to survive, got %+v", latest.Parsed)
	}
}

func TestIntakeServiceSessionsAreScopedToUser(t *testing.T) {
	ctx := context.Background()
	pool := integrationTestPool(t)
	service := newIntegrationIntakeService(pool)

	ownerID := createTestUser(t, ctx, pool)
	otherID := createTestUser(t, ctx, pool)
	t.Cleanup(func() { cleanupTestUsers(t, ctx, pool, ownerID, otherID) })

	result, err := service.Submit(ctx, ownerID, "user", uuid.Nil, "35 years old")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if _, err := service.Submit(ctx, otherID, "user", result.SessionID, "80 kg"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound for other user, got %v", err)
	}
	if _, _, err := service.History(ctx, otherID, "user", result.SessionID, 1, 10); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound history for other user, got %v", err)
	}
}

func integrationTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	testDBOnce.Do(func() {
		_ = godotenv.Load(".env")
		_ = godotenv.Load(filepath.Join("..", "..", ".env"))

		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			testDBErr = fmt.Errorf("DB_URL is not set")
			return
		}

		cfg, err := pgxpool.ParseConfig(dbURL)
		if err != nil {
			testDBErr = err
			return
		}

		testDBPool, testDBErr = pgxpool.NewWithConfig(context.Background(), cfg)
		if testDBErr != nil {
			return
		}
		testDBErr = testDBPool.Ping(context.Background())
	})

	if testDBErr != nil {
		t.Skipf("skipping integration test: %v", testDBErr)
	}
	return testDBPool
}

func newIntegrationIntakeService(pool *pgxpool.Pool) *IntakeService {
	return NewIntakeService(
		pool,
		repository.NewIntakeRepository(pool),
		repository.NewUserProfileRepository(pool),
		2000,
	)
}

func createTestUser(t *testing.T, ctx context.Context, pool *pgxpool.Pool) int64 {
	t.Helper()

	user := &models.User{
		Email:        fmt.Sprintf("intake-test-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "test-hash",
		Role:         "user",
	}
	if err := repository.NewUserRepository(pool).CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := repository.NewUserProfileRepository(pool).CreateEmpty(ctx, user.ID); err != nil {
		t.Fatalf("CreateEmpty user profile: %v", err)
	}
	return user.ID
}

func cleanupTestUsers(t *testing.T, ctx context.Context, pool *pgxpool.Pool, userIDs ...int64) {
	t.Helper()

	if len(userIDs) == 0 {
		return
	}

	if _, err := pool.Exec(ctx, "DELETE FROM intake_messages WHERE user_id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup intake messages: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM users WHERE id = ANY($1)", userIDs); err != nil {
		t.Fatalf("cleanup users: %v", err)
	}
}
