// Package seed installs the default staff roster and checklist when the
// database is empty, so a fresh deployment is usable immediately.
package seed

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/repository"
)

type Seeder struct {
	users  repository.UserRepository
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(users repository.UserRepository, tasks repository.TaskRepository, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		users:  users,
		tasks:  tasks,
		logger: logger,
	}
}

// RunIfEmpty seeds defaults only when no users exist yet.
func (s *Seeder) RunIfEmpty(ctx context.Context, defaultPassword string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := defaultUsers(string(hash))
	for i := range users {
		if err := s.users.Upsert(ctx, &users[i]); err != nil {
			return err
		}
	}

	inserted, err := s.tasks.CreateBatch(ctx, defaultTasks())
	if err != nil {
		return err
	}

	s.logger.Info("seeded default data",
		zap.Int("users", len(users)),
		zap.Int("tasks", inserted))
	return nil
}

func defaultUsers(passwordHash string) []domain.User {
	return []domain.User{
		{Name: "General Manager", Email: "manager@shiftcheck.local", PasswordHash: passwordHash, Role: domain.RoleManager},
		{Name: "Head Chef", Email: "kitchen1@shiftcheck.local", PasswordHash: passwordHash, Role: domain.RoleKitchen, JobPosition: "Head Chef"},
		{Name: "Line Cook", Email: "kitchen2@shiftcheck.local", PasswordHash: passwordHash, Role: domain.RoleKitchen, JobPosition: "Line Cook"},
		{Name: "Floor Lead", Email: "service1@shiftcheck.local", PasswordHash: passwordHash, Role: domain.RoleService, JobPosition: "Floor Lead"},
		{Name: "Server", Email: "service2@shiftcheck.local", PasswordHash: passwordHash, Role: domain.RoleService, JobPosition: "Server"},
	}
}

func defaultTasks() []domain.Task {
	deadline := func(hour, minute int) *domain.DayTime {
		return &domain.DayTime{Hour: hour, Minute: minute}
	}
	return []domain.Task{
		{Title: "Check freezer and fridge temperatures", Description: "Fridge below 5C, freezer below -18C. Record in the log book.", Department: domain.DepartmentKitchen, Deadline: deadline(9, 0)},
		{Title: "Check gas valves and extraction", Description: "Run the extractor fan, inspect the central gas valve.", Department: domain.DepartmentKitchen, Deadline: deadline(9, 30)},
		{Title: "Defrost beef for the evening shift", Description: "Move portions from freezer to fridge.", Department: domain.DepartmentKitchen, Deadline: deadline(10, 0)},
		{Title: "Prepare BBQ marinade", Description: "Mix five litres of standard marinade, label with the date.", Department: domain.DepartmentKitchen, Deadline: deadline(11, 0)},
		{Title: "Wipe tables and chairs", Description: "Degrease table tops and leather chairs.", Department: domain.DepartmentService, Deadline: deadline(10, 0)},
		{Title: "Set tables to standard", Description: "Four bowls, four chopstick sets, tongs, scissors, napkins.", Department: domain.DepartmentService, Deadline: deadline(10, 30)},
	}
}
