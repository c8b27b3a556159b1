package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/campushq/placetrack/core/application"
	"github.com/campushq/placetrack/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, pwd, role string,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	if role == "" {
		role = user.RoleStudent
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

func CreateApplication(
	t *testing.T,
	repo application.Repository,
	ownerID, company, role string,
	pkg float64,
	rounds []string,
	currentRound, status string,
	createdAt ...time.Time,
) application.Application {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	if status == "" {
		status = application.StatusInProgress
	}
	app := application.Application{
		OwnerID:      ownerID,
		Company:      company,
		Role:         role,
		Package:      pkg,
		Rounds:       rounds,
		CurrentRound: currentRound,
		Status:       status,
		CreatedAt:    tstamp,
		UpdatedAt:    tstamp,
	}
	app, err := repo.CreateApplication(context.Background(), app)
	if err != nil {
		t.Fatalf("CreateApplication() failed: %v", err)
	}
	return app
}
