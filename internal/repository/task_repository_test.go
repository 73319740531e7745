package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"todoapi/internal/model"
	"todoapi/internal/repository"
	"todoapi/internal/testutil"
)

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedTask(t *testing.T, db *gorm.DB, task model.Task) *model.Task {
	t.Helper()
	require.NoError(t, db.Create(&task).Error)
	return &task
}

func taskTitles(tasks []model.Task) []string {
	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	return titles
}

func TestListFiltersCompose(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTaskRepository(db)
	user := seedUser(t, db, "alice")
	ctx := context.Background()

	category := &model.Category{UserID: user.ID, Name: "Work"}
	require.NoError(t, db.Create(category).Error)

	seedTask(t, db, model.Task{UserID: user.ID, Title: "Write report", Description: "quarterly numbers", Priority: model.PriorityHigh, CategoryID: &category.ID})
	seedTask(t, db, model.Task{UserID: user.ID, Title: "Buy groceries", Priority: model.PriorityLow})
	seedTask(t, db, model.Task{UserID: user.ID, Title: "Review REPORT draft", Priority: model.PriorityHigh, IsCompleted: true, CategoryID: &category.ID})

	// status + priority + search apply together.
	tasks, err := repo.List(ctx, user.ID, repository.TaskFilter{
		Status:   "active",
		Priority: model.PriorityHigh,
		Search:   "report",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Write report"}, taskTitles(tasks))

	// search is case-insensitive and matches description too.
	tasks, err = repo.List(ctx, user.ID, repository.TaskFilter{Search: "QUARTERLY"})
	require.NoError(t, err)
	require.Equal(t, []string{"Write report"}, taskTitles(tasks))

	// category narrows to its members.
	tasks, err = repo.List(ctx, user.ID, repository.TaskFilter{Category: &category.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// completed status.
	tasks, err = repo.List(ctx, user.ID, repository.TaskFilter{Status: "completed"})
	require.NoError(t, err)
	require.Equal(t, []string{"Review REPORT draft"}, taskTitles(tasks))
}

func TestListScopedToOwner(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTaskRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	ctx := context.Background()

	seedTask(t, db, model.Task{UserID: alice.ID, Title: "mine"})
	theirs := seedTask(t, db, model.Task{UserID: bob.ID, Title: "theirs"})

	tasks, err := repo.List(ctx, alice.ID, repository.TaskFilter{})
	require.NoError(t, err)
	require.Equal(t, []string{"mine"}, taskTitles(tasks))

	_, err = repo.FindByID(ctx, alice.ID, 0)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Bob's task is invisible to Alice even by id.
	_, err = repo.FindByID(ctx, alice.ID, theirs.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSortAllowList(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTaskRepository(db)
	user := seedUser(t, db, "alice")
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, title := range []string{"banana", "apple", "cherry"} {
		due := base.AddDate(0, 0, 3-i)
		seedTask(t, db, model.Task{
			UserID:    user.ID,
			Title:     title,
			DueDate:   &due,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	cases := []struct {
		sort string
		want []string
	}{
		{"title", []string{"apple", "banana", "cherry"}},
		{"-title", []string{"cherry", "banana", "apple"}},
		{"created_at", []string{"banana", "apple", "cherry"}},
		{"-created_at", []string{"cherry", "apple", "banana"}},
		{"due_date", []string{"cherry", "apple", "banana"}},
		{"-due_date", []string{"banana", "apple", "cherry"}},
		// Anything off the allow-list silently falls back to -created_at.
		{"priority", []string{"cherry", "apple", "banana"}},
		{"id; DROP TABLE tasks", []string{"cherry", "apple", "banana"}},
		{"", []string{"cherry", "apple", "banana"}},
	}

	for _, tc := range cases {
		tasks, err := repo.List(ctx, user.ID, repository.TaskFilter{Sort: tc.sort})
		require.NoError(t, err, "sort %q", tc.sort)
		require.Equal(t, tc.want, taskTitles(tasks), "sort %q", tc.sort)
	}
}

func TestFilterIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTaskRepository(db)
	user := seedUser(t, db, "alice")
	ctx := context.Background()

	seedTask(t, db, model.Task{UserID: user.ID, Title: "a", Priority: model.PriorityHigh})
	seedTask(t, db, model.Task{UserID: user.ID, Title: "b", Priority: model.PriorityLow})

	filter := repository.TaskFilter{Status: "active", Priority: model.PriorityHigh}
	first, err := repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	second, err := repo.List(ctx, user.ID, filter)
	require.NoError(t, err)
	require.Equal(t, taskTitles(first), taskTitles(second))

	// Every task in the result still satisfies the filter.
	for _, task := range first {
		require.False(t, task.IsCompleted)
		require.Equal(t, model.PriorityHigh, task.Priority)
	}
}

func TestCountStats(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTaskRepository(db)
	user := seedUser(t, db, "alice")
	ctx := context.Background()
	now := time.Now()

	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	seedTask(t, db, model.Task{UserID: user.ID, Title: "overdue", DueDate: &yesterday, Priority: model.PriorityHigh})
	seedTask(t, db, model.Task{UserID: user.ID, Title: "done late", DueDate: &yesterday, IsCompleted: true})
	seedTask(t, db, model.Task{UserID: user.ID, Title: "soon", DueDate: &tomorrow})
	seedTask(t, db, model.Task{UserID: user.ID, Title: "someday"})

	stats, err := repo.CountStats(ctx, user.ID, repository.TaskFilter{}, now)
	require.NoError(t, err)
	require.Equal(t, repository.Stats{
		Total:        4,
		Completed:    1,
		Active:       3,
		HighPriority: 1,
		Overdue:      1,
	}, stats)

	// Stats run over the caller's filtered view, not the full set.
	stats, err = repo.CountStats(ctx, user.ID, repository.TaskFilter{Status: "completed"}, now)
	require.NoError(t, err)
	require.Equal(t, repository.Stats{Total: 1, Completed: 1}, stats)
}

func TestUpcoming(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewTaskRepository(db)
	user := seedUser(t, db, "alice")
	ctx := context.Background()
	now := time.Now()

	for i := 1; i <= 5; i++ {
		due := now.AddDate(0, 0, i)
		seedTask(t, db, model.Task{UserID: user.ID, Title: string(rune('0' + i)), DueDate: &due})
	}
	past := now.AddDate(0, 0, -1)
	seedTask(t, db, model.Task{UserID: user.ID, Title: "past", DueDate: &past})
	future := now.AddDate(0, 0, 2)
	seedTask(t, db, model.Task{UserID: user.ID, Title: "done", DueDate: &future, IsCompleted: true})
	seedTask(t, db, model.Task{UserID: user.ID, Title: "undated"})

	tasks, err := repo.Upcoming(ctx, user.ID, repository.TaskFilter{}, now, 2)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2"}, taskTitles(tasks))

	tasks, err = repo.Upcoming(ctx, user.ID, repository.TaskFilter{}, now, 10)
	require.NoError(t, err)
	require.Equal(t, []string{"1", "2", "3", "4", "5"}, taskTitles(tasks))

	// Nothing qualifies once everything pending is past due.
	tasks, err = repo.Upcoming(ctx, user.ID, repository.TaskFilter{}, now.AddDate(1, 0, 0), 10)
	require.NoError(t, err)
	require.Empty(t, tasks)
}
