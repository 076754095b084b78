package checklist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/pkg/clock"
	"github.com/shiftcheck/backend/repository"
	"github.com/shiftcheck/backend/usecase/checklist"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	created, _ := args.Get(0).(*domain.Task)
	return created, args.Error(1)
}

func (m *mockTaskRepo) CreateBatch(ctx context.Context, tasks []domain.Task) (int, error) {
	args := m.Called(ctx, tasks)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskRepo) Toggle(ctx context.Context, params repository.ToggleParams) (*domain.Task, error) {
	args := m.Called(ctx, params)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

var testNow = time.Date(2026, 8, 29, 10, 30, 0, 0, time.FixedZone("", 7*3600))

func newUseCase(tasks *mockTaskRepo, users *mockUserRepo) *checklist.UseCase {
	return checklist.New(tasks, users, clock.Fixed{T: testNow}, nil)
}

func kitchenTask(id string) *domain.Task {
	return &domain.Task{
		ID:         id,
		Title:      "Check freezer temperature",
		Department: domain.DepartmentKitchen,
		Deadline:   &domain.DayTime{Hour: 9, Minute: 0},
	}
}

func TestToggle(t *testing.T) {
	ctx := context.Background()

	t.Run("complete records a complete action", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		tasks.On("GetByID", ctx, "t1").Return(kitchenTask("t1"), nil)
		users.On("GetByID", ctx, "u1").
			Return(&domain.User{ID: "u1", Role: domain.RoleKitchen}, nil)

		done := kitchenTask("t1")
		done.IsCompleted = true
		done.CompletedBy = "u1"
		done.CompletedAt = &testNow
		tasks.On("Toggle", ctx, repository.ToggleParams{
			TaskID:       "t1",
			ActorID:      "u1",
			SetCompleted: true,
			Action:       domain.ActionComplete,
			Now:          testNow,
		}).Return(done, nil)

		got, err := uc.Toggle(ctx, checklist.ToggleInput{TaskID: "t1", ActorID: "u1", SetCompleted: true})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDone, got.Status)
		assert.True(t, got.IsCompleted)
		tasks.AssertExpectations(t)
	})

	t.Run("undo records an undo action and goes late past deadline", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		started := kitchenTask("t1")
		started.IsCompleted = true
		tasks.On("GetByID", ctx, "t1").Return(started, nil)
		users.On("GetByID", ctx, "u1").
			Return(&domain.User{ID: "u1", Role: domain.RoleKitchen}, nil)

		undone := kitchenTask("t1")
		undone.ProofImage = "proof.jpg"
		tasks.On("Toggle", ctx, repository.ToggleParams{
			TaskID:       "t1",
			ActorID:      "u1",
			SetCompleted: false,
			Action:       domain.ActionUndo,
			Now:          testNow,
		}).Return(undone, nil)

		got, err := uc.Toggle(ctx, checklist.ToggleInput{TaskID: "t1", ActorID: "u1", SetCompleted: false})
		require.NoError(t, err)
		assert.False(t, got.IsCompleted)
		assert.Equal(t, domain.StatusLate, got.Status, "deadline 09:00 already passed at 10:30")
		assert.Equal(t, "proof.jpg", got.ProofImage, "undo keeps the stored proof")
	})

	t.Run("proof image takes audit precedence", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		tasks.On("GetByID", ctx, "t1").Return(kitchenTask("t1"), nil)
		users.On("GetByID", ctx, "u1").
			Return(&domain.User{ID: "u1", Role: domain.RoleManager}, nil)
		tasks.On("Toggle", ctx, mock.MatchedBy(func(p repository.ToggleParams) bool {
			return p.Action == domain.ActionUploadProof && p.ProofImage == "photo.jpg"
		})).Return(kitchenTask("t1"), nil)

		_, err := uc.Toggle(ctx, checklist.ToggleInput{
			TaskID: "t1", ActorID: "u1", SetCompleted: true, ProofImage: "photo.jpg",
		})
		require.NoError(t, err)
		tasks.AssertExpectations(t)
	})

	t.Run("re-toggle to the same value is still audited", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		already := kitchenTask("t1")
		already.IsCompleted = true
		tasks.On("GetByID", ctx, "t1").Return(already, nil)
		users.On("GetByID", ctx, "u1").
			Return(&domain.User{ID: "u1", Role: domain.RoleKitchen}, nil)
		tasks.On("Toggle", ctx, mock.MatchedBy(func(p repository.ToggleParams) bool {
			return p.SetCompleted && p.Action == domain.ActionComplete
		})).Return(already, nil)

		_, err := uc.Toggle(ctx, checklist.ToggleInput{TaskID: "t1", ActorID: "u1", SetCompleted: true})
		require.NoError(t, err)
		tasks.AssertNumberOfCalls(t, "Toggle", 1)
	})

	t.Run("unknown actor is unauthorized", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		tasks.On("GetByID", ctx, "t1").Return(kitchenTask("t1"), nil)
		users.On("GetByID", ctx, "ghost").Return(nil, domain.ErrUserNotFound)

		_, err := uc.Toggle(ctx, checklist.ToggleInput{TaskID: "t1", ActorID: "ghost", SetCompleted: true})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
		tasks.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything)
	})

	t.Run("wrong department is forbidden", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		tasks.On("GetByID", ctx, "t1").Return(kitchenTask("t1"), nil)
		users.On("GetByID", ctx, "u2").
			Return(&domain.User{ID: "u2", Role: domain.RoleService}, nil)

		_, err := uc.Toggle(ctx, checklist.ToggleInput{TaskID: "t1", ActorID: "u2", SetCompleted: true})
		assert.ErrorIs(t, err, domain.ErrNotPermitted)
		tasks.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything)
	})

	t.Run("missing task", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		tasks.On("GetByID", ctx, "nope").Return(nil, domain.ErrTaskNotFound)

		_, err := uc.Toggle(ctx, checklist.ToggleInput{TaskID: "nope", ActorID: "u1", SetCompleted: true})
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("store failure is surfaced untouched", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		tasks.On("GetByID", ctx, "t1").Return(kitchenTask("t1"), nil)
		users.On("GetByID", ctx, "u1").
			Return(&domain.User{ID: "u1", Role: domain.RoleKitchen}, nil)
		storeErr := domain.StoreUnavailable(errors.New("connection reset"))
		tasks.On("Toggle", ctx, mock.Anything).Return(nil, storeErr)

		_, err := uc.Toggle(ctx, checklist.ToggleInput{TaskID: "t1", ActorID: "u1", SetCompleted: true})
		require.Error(t, err)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
	})
}

func TestListTasks(t *testing.T) {
	ctx := context.Background()
	tasks := new(mockTaskRepo)
	users := new(mockUserRepo)
	uc := newUseCase(tasks, users)

	stored := []domain.Task{
		{ID: "a", Deadline: &domain.DayTime{Hour: 9}, Status: domain.StatusPending},
		{ID: "b", Deadline: &domain.DayTime{Hour: 12}, Status: domain.StatusPending},
		{ID: "c", IsCompleted: true, Deadline: &domain.DayTime{Hour: 9}, Status: domain.StatusPending},
	}
	tasks.On("List", ctx, repository.TaskFilter{Department: domain.DepartmentKitchen}).Return(stored, nil)

	got, err := uc.ListTasks(ctx, repository.TaskFilter{Department: domain.DepartmentKitchen})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, domain.StatusLate, got[0].Status, "09:00 deadline passed at 10:30")
	assert.Equal(t, domain.StatusPending, got[1].Status)
	assert.Equal(t, domain.StatusDone, got[2].Status, "stored status column is overridden")
}

func TestImportTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("filters invalid rows", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		input := []domain.Task{
			{Title: "Wipe tables", Department: domain.DepartmentService},
			{Title: "", Department: domain.DepartmentService},
			{Title: "No department", Department: "bar"},
		}
		tasks.On("CreateBatch", ctx, mock.MatchedBy(func(rows []domain.Task) bool {
			return len(rows) == 1 && rows[0].Title == "Wipe tables"
		})).Return(1, nil)

		n, err := uc.ImportTasks(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("all rows invalid", func(t *testing.T) {
		tasks := new(mockTaskRepo)
		users := new(mockUserRepo)
		uc := newUseCase(tasks, users)

		_, err := uc.ImportTasks(ctx, []domain.Task{{Title: ""}})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
		tasks.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
	})
}

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	tasks := new(mockTaskRepo)
	users := new(mockUserRepo)
	uc := newUseCase(tasks, users)

	_, err := uc.CreateTask(ctx, &domain.Task{Title: "", Department: domain.DepartmentKitchen})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	_, err = uc.CreateTask(ctx, &domain.Task{Title: "Defrost beef", Department: "warehouse"})
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)

	valid := &domain.Task{Title: "Defrost beef", Department: domain.DepartmentKitchen}
	tasks.On("Create", ctx, valid).Return(valid, nil)
	created, err := uc.CreateTask(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, created.Status)
}
