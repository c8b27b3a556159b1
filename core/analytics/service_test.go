package analytics_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/campushq/placetrack/core/analytics"
	"github.com/campushq/placetrack/core/application"
	"github.com/campushq/placetrack/core/user"
	dummydb "github.com/campushq/placetrack/storage/database/dummy"
	testutil "github.com/campushq/placetrack/tests"
)

type cacheSpy struct {
	stored *analytics.GlobalStats
	hits   int
	misses int
}

func (c *cacheSpy) GetGlobalStats(context.Context) (*analytics.GlobalStats, error) {
	if c.stored == nil {
		c.misses++
		return nil, nil
	}
	c.hits++
	return c.stored, nil
}

func (c *cacheSpy) SetGlobalStats(_ context.Context, stats analytics.GlobalStats) error {
	c.stored = &stats
	return nil
}

func setup(t *testing.T, cache analytics.Cache) (*analytics.Service, application.Repository, user.Repository) {
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	appRepo := dummydb.NewApplicationRepository(db)
	usrRepo := dummydb.NewUserRepository(db)
	anRepo := dummydb.NewAnalyticsRepository(db)
	return analytics.NewService(anRepo, usrRepo, appRepo, cache), appRepo, usrRepo
}

func seed(t *testing.T, appRepo application.Repository, usrRepo user.Repository) (jane, john user.User) {
	jane = testutil.CreateUser(t, usrRepo, "Jane", "jane@test.cd", "", user.RoleStudent)
	john = testutil.CreateUser(t, usrRepo, "John", "john@test.cd", "", user.RoleStudent)

	mk := func(ownerID, company, round, status string) {
		testutil.CreateApplication(t, appRepo, ownerID, company, "SDE", 10, []string{round}, round, status)
	}
	mk(jane.ID, "Acme", "HR", application.StatusOffer)
	mk(jane.ID, "Acme", "Tech", application.StatusRejected)
	mk(jane.ID, "Globex", "Tech", application.StatusRejected)
	mk(jane.ID, "Hooli", "OA", application.StatusInProgress)
	mk(john.ID, "Globex", "OA", application.StatusInProgress)
	return jane, john
}

func TestService_Summary(t *testing.T) {
	svc, appRepo, usrRepo := setup(t, nil)
	jane, john := seed(t, appRepo, usrRepo)

	tests := []struct {
		name    string
		ownerID string
		want    analytics.Summary
	}{
		{name: "jane", ownerID: jane.ID, want: analytics.Summary{Total: 4, InProgress: 1, Offer: 1, Rejected: 2}},
		{name: "john", ownerID: john.ID, want: analytics.Summary{Total: 1, InProgress: 1}},
		{name: "unknown owner", ownerID: "ghost", want: analytics.Summary{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Summary(context.Background(), tt.ownerID)
			if err != nil {
				t.Fatalf("Summary() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Summary() = %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestService_CompanyBreakdown(t *testing.T) {
	svc, appRepo, usrRepo := setup(t, nil)
	jane, _ := seed(t, appRepo, usrRepo)

	got, err := svc.CompanyBreakdown(context.Background(), jane.ID)
	if err != nil {
		t.Fatalf("CompanyBreakdown() failed: %v", err)
	}
	want := []analytics.CompanyStat{
		{Company: "Acme", Total: 2, Offers: 1, Rejected: 1},
		{Company: "Globex", Total: 1, Rejected: 1},
		{Company: "Hooli", Total: 1, InProgress: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompanyBreakdown() = %+v; want %+v", got, want)
	}
}

func TestService_RoundDropOff(t *testing.T) {
	svc, appRepo, usrRepo := setup(t, nil)
	jane, john := seed(t, appRepo, usrRepo)

	got, err := svc.RoundDropOff(context.Background(), jane.ID)
	if err != nil {
		t.Fatalf("RoundDropOff() failed: %v", err)
	}
	// only rejections count; both of jane's happened at the Tech round
	want := []analytics.RoundStat{{Round: "Tech", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RoundDropOff() = %+v; want %+v", got, want)
	}

	if got, err = svc.RoundDropOff(context.Background(), john.ID); err != nil {
		t.Fatalf("RoundDropOff() failed: %v", err)
	} else if len(got) != 0 {
		t.Errorf("RoundDropOff() = %+v; want empty", got)
	}
}

func TestService_GlobalStats(t *testing.T) {
	svc, appRepo, usrRepo := setup(t, nil)
	seed(t, appRepo, usrRepo)

	got, err := svc.GlobalStats(context.Background())
	if err != nil {
		t.Fatalf("GlobalStats() failed: %v", err)
	}
	want := analytics.GlobalStats{
		TotalUsers:        2,
		TotalApplications: 5,
		ApplicationsByStatus: analytics.StatusCounts{
			InProgress: 2,
			Offer:      1,
			Rejected:   2,
		},
		TopCompanies: []analytics.CompanyCount{
			{Company: "Acme", Count: 2},
			{Company: "Globex", Count: 2},
			{Company: "Hooli", Count: 1},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GlobalStats() = %+v; want %+v", got, want)
	}
}

func TestService_GlobalStats_cache(t *testing.T) {
	cache := new(cacheSpy)
	svc, appRepo, usrRepo := setup(t, cache)
	seed(t, appRepo, usrRepo)

	first, err := svc.GlobalStats(context.Background())
	if err != nil {
		t.Fatalf("GlobalStats() failed: %v", err)
	}
	if cache.misses != 1 || cache.stored == nil {
		t.Fatalf("cache misses = %v, stored = %v; want a miss then a fill", cache.misses, cache.stored)
	}

	second, err := svc.GlobalStats(context.Background())
	if err != nil {
		t.Fatalf("GlobalStats() failed: %v", err)
	}
	if cache.hits != 1 {
		t.Errorf("cache hits = %v; want 1", cache.hits)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
}
