package schedulestore_test

import (
	"testing"

	schedulestore "github.com/dalemusser/tourhub/internal/app/store/schedules"
	"github.com/dalemusser/tourhub/internal/domain/models"
	"github.com/dalemusser/tourhub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_Upsert_CreateThenUpdate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schedulestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	week := models.WeekSchedule{
		"Monday":  {"09:00", "11:00"},
		"Tuesday": {"14:00"},
	}

	created, err := store.Upsert(ctx, "deniz", week)
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !created {
		t.Error("first save: expected created=true")
	}

	week["Monday"] = []string{"10:00"}
	created, err = store.Upsert(ctx, "deniz", week)
	if err != nil {
		t.Fatalf("Upsert (second) failed: %v", err)
	}
	if created {
		t.Error("second save: expected created=false")
	}

	got, err := store.GetByUsername(ctx, "deniz")
	if err != nil {
		t.Fatalf("GetByUsername failed: %v", err)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to survive the update")
	}
	if got.UpdatedAt == nil {
		t.Error("expected UpdatedAt to be set")
	}
	if !got.HasSlot("Monday", "10:00") || got.HasSlot("Monday", "09:00") {
		t.Errorf("schedule not replaced: %+v", got.Schedule)
	}
}

func TestStore_GetByUsername_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schedulestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByUsername(ctx, "nobody")
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListByUsernames(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := schedulestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateSchedule(ctx, "deniz", models.WeekSchedule{"Monday": {"09:00"}})
	fixtures.CreateSchedule(ctx, "ayse", models.WeekSchedule{"Friday": {"13:00"}})
	fixtures.CreateSchedule(ctx, "mehmet", models.WeekSchedule{"Monday": {"09:00"}})

	got, err := store.ListByUsernames(ctx, []string{"deniz", "ayse"})
	if err != nil {
		t.Fatalf("ListByUsernames failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d schedules, want 2", len(got))
	}
}
