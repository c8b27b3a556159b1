package dummydb

import (
	"sync"

	"github.com/campushq/placetrack/core/application"
	"github.com/campushq/placetrack/core/user"
)

// DB is an in-memory store used for tests and local hacking. It implements
// the same semantics as the SQL repositories.
type (
	DB struct {
		user        *userTable
		application *applicationTable
	}

	userTable struct {
		t     map[string]*user.User
		mutex sync.RWMutex
	}

	applicationTable struct {
		t     map[string]*application.Application
		mutex sync.RWMutex
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:        &userTable{t: make(map[string]*user.User)},
		application: &applicationTable{t: make(map[string]*application.Application)},
	}
	return db, nil
}
