package services

import (
	"errors"
	"fmt"
	"testing"

	"taskboard/app/httperr"
	"taskboard/app/models"
	"taskboard/app/repo"
	"taskboard/app/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = token.Identity{UserID: 1, Role: "user"}
	bob   = token.Identity{UserID: 2, Role: "user"}
	root  = token.Identity{UserID: 3, Role: "admin"}
)

func newTaskService(t *testing.T) *TaskService {
	t.Helper()
	return NewTaskService(repo.NewTaskRepository(newTestDB(t)))
}

func mustCreate(t *testing.T, s *TaskService, ident token.Identity, title, status string) *models.Task {
	t.Helper()
	task, err := s.Create(ident, title, "", status)
	require.NoError(t, err)
	return task
}

func kindOf(t *testing.T, err error) httperr.Kind {
	t.Helper()
	var he *httperr.Error
	require.True(t, errors.As(err, &he), "expected a taxonomy error, got %v", err)
	return he.Kind
}

func TestCreateForcesOwner(t *testing.T) {
	s := newTaskService(t)

	task := mustCreate(t, s, alice, "Buy milk", models.StatusPending)
	assert.Equal(t, alice.UserID, task.OwnerID)
	assert.NotZero(t, task.ID)
}

func TestListScopedToOwner(t *testing.T) {
	s := newTaskService(t)
	mustCreate(t, s, alice, "Buy milk", models.StatusPending)
	mustCreate(t, s, alice, "Walk dog", models.StatusCompleted)
	mustCreate(t, s, bob, "Ship release", models.StatusInProgress)

	res, err := s.List(alice, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	for _, task := range res.Tasks {
		assert.Equal(t, alice.UserID, task.OwnerID)
	}

	res, err = s.List(bob, ListOptions{})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "Ship release", res.Tasks[0].Title)
}

func TestListAdminSpansAllOwners(t *testing.T) {
	s := newTaskService(t)
	mustCreate(t, s, alice, "Buy milk", models.StatusPending)
	mustCreate(t, s, bob, "Ship release", models.StatusInProgress)

	res, err := s.List(root, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	owners := map[uint]bool{}
	for _, task := range res.Tasks {
		owners[task.OwnerID] = true
	}
	assert.True(t, owners[alice.UserID])
	assert.True(t, owners[bob.UserID])
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	s := newTaskService(t)
	mustCreate(t, s, alice, "Buy milk", models.StatusPending)
	mustCreate(t, s, alice, "Walk dog", models.StatusPending)

	for _, q := range []string{"milk", "MILK", "Milk"} {
		res, err := s.List(alice, ListOptions{Search: q})
		require.NoError(t, err)
		require.Len(t, res.Tasks, 1, "search %q", q)
		assert.Equal(t, "Buy milk", res.Tasks[0].Title)
	}
}

func TestListStatusFilter(t *testing.T) {
	s := newTaskService(t)
	mustCreate(t, s, alice, "a", models.StatusPending)
	mustCreate(t, s, alice, "b", models.StatusCompleted)
	mustCreate(t, s, alice, "c", models.StatusCompleted)

	res, err := s.List(alice, ListOptions{Status: models.StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)
	for _, task := range res.Tasks {
		assert.Equal(t, models.StatusCompleted, task.Status)
	}
}

func TestListPagination(t *testing.T) {
	s := newTaskService(t)
	for i := 0; i < 7; i++ {
		mustCreate(t, s, alice, fmt.Sprintf("task %d", i), models.StatusPending)
	}

	res, err := s.List(alice, ListOptions{Page: 1, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Total)
	assert.Equal(t, 3, res.Pages) // ceil(7/3)
	assert.Len(t, res.Tasks, 3)

	res, err = s.List(alice, ListOptions{Page: 3, Limit: 3})
	require.NoError(t, err)
	assert.Len(t, res.Tasks, 1)

	// page and limit are normalized, not rejected
	res, err = s.List(alice, ListOptions{Page: -5, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Tasks, DefaultPageSize)
}

func TestListEmptyHasZeroPages(t *testing.T) {
	s := newTaskService(t)

	res, err := s.List(alice, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Total)
	assert.Equal(t, 0, res.Pages)
	assert.Equal(t, 1, res.Page)
}

func TestListLimitIsClamped(t *testing.T) {
	s := newTaskService(t)
	for i := 0; i < MaxPageSize+5; i++ {
		mustCreate(t, s, alice, fmt.Sprintf("task %d", i), models.StatusPending)
	}

	res, err := s.List(alice, ListOptions{Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, res.Tasks, MaxPageSize)
	assert.Equal(t, 2, res.Pages)
}

func TestUpdateOwnTask(t *testing.T) {
	s := newTaskService(t)
	task := mustCreate(t, s, alice, "Buy milk", models.StatusPending)

	newStatus := models.StatusCompleted
	updated, err := s.Update(alice, task.ID, TaskPatch{Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, "Buy milk", updated.Title)
	assert.Equal(t, alice.UserID, updated.OwnerID)
}

func TestUpdateForeignTaskIsNotFound(t *testing.T) {
	s := newTaskService(t)
	task := mustCreate(t, s, alice, "Buy milk", models.StatusPending)

	title := "hijacked"
	_, err := s.Update(bob, task.ID, TaskPatch{Title: &title})
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, kindOf(t, err))

	// the record is untouched
	res, err := s.List(alice, ListOptions{})
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, "Buy milk", res.Tasks[0].Title)
}

func TestAdminMayUpdateAnyTask(t *testing.T) {
	s := newTaskService(t)
	task := mustCreate(t, s, alice, "Buy milk", models.StatusPending)

	newStatus := models.StatusInProgress
	updated, err := s.Update(root, task.ID, TaskPatch{Status: &newStatus})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	// ownership never moves, even under an admin update
	assert.Equal(t, alice.UserID, updated.OwnerID)
}

func TestUpdateMissingTask(t *testing.T) {
	s := newTaskService(t)

	title := "x"
	_, err := s.Update(alice, 999, TaskPatch{Title: &title})
	assert.Equal(t, httperr.KindNotFound, kindOf(t, err))
}

func TestDelete(t *testing.T) {
	s := newTaskService(t)
	task := mustCreate(t, s, alice, "Buy milk", models.StatusPending)

	// Bob cannot delete Alice's task, and learns nothing from the answer
	err := s.Delete(bob, task.ID)
	assert.Equal(t, httperr.KindNotFound, kindOf(t, err))

	require.NoError(t, s.Delete(alice, task.ID))

	// deleting the same id again matches the missing-id convention
	err = s.Delete(alice, task.ID)
	assert.Equal(t, httperr.KindNotFound, kindOf(t, err))
}
