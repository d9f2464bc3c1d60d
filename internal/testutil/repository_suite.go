package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskman/internal/domain"
)

// RunTaskRepositoryTests exercises the domain.TaskRepository contract
// against repositories produced by newRepo. Every store backend runs it.
func RunTaskRepositoryTests(t *testing.T, newRepo func(t *testing.T) domain.TaskRepository) {
	t.Helper()

	t.Run("CreateAssignsIncreasingIDs", func(t *testing.T) {
		repo := newRepo(t)

		id1, err := repo.Create("Buy milk")
		require.NoError(t, err)
		id2, err := repo.Create("Walk dog")
		require.NoError(t, err)

		assert.Equal(t, 1, id1)
		assert.Greater(t, id2, id1)

		task, err := repo.Get(id1)
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", task.Description)
		assert.Equal(t, domain.StatusActive, task.Status)
	})

	t.Run("IDsAreNeverReused", func(t *testing.T) {
		repo := newRepo(t)

		id1, err := repo.Create("first")
		require.NoError(t, err)
		id2, err := repo.Create("second")
		require.NoError(t, err)
		require.NoError(t, repo.Delete([]int{id2}))

		id3, err := repo.Create("third")
		require.NoError(t, err)
		assert.Greater(t, id3, id2)
		assert.NotEqual(t, id1, id3)
	})

	t.Run("ListOrderedByID", func(t *testing.T) {
		repo := newRepo(t)

		tasks, err := repo.List()
		require.NoError(t, err)
		assert.Empty(t, tasks)

		for _, d := range []string{"a", "b", "c"} {
			_, err := repo.Create(d)
			require.NoError(t, err)
		}

		tasks, err = repo.List()
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, []int{1, 2, 3}, taskIDs(tasks))
		assert.Equal(t, "a", tasks[0].Description)
		assert.Equal(t, "c", tasks[2].Description)
	})

	t.Run("GetMissing", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Get(42)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("SetStatusTogglesEachTaskIndependently", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, "a")
		b := mustCreate(t, repo, "b")
		c := mustCreate(t, repo, "c")
		completed := domain.StatusCompleted
		require.NoError(t, repo.SetStatus([]int{b}, &completed))

		require.NoError(t, repo.SetStatus([]int{a, b}, nil))

		assert.Equal(t, domain.StatusCompleted, mustGet(t, repo, a).Status)
		assert.Equal(t, domain.StatusActive, mustGet(t, repo, b).Status)
		assert.Equal(t, domain.StatusActive, mustGet(t, repo, c).Status, "tasks outside the set are untouched")

		require.NoError(t, repo.SetStatus([]int{a, b}, nil))
		assert.Equal(t, domain.StatusActive, mustGet(t, repo, a).Status)
		assert.Equal(t, domain.StatusCompleted, mustGet(t, repo, b).Status)
	})

	t.Run("SetStatusExplicit", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, "a")
		b := mustCreate(t, repo, "b")
		completed := domain.StatusCompleted

		require.NoError(t, repo.SetStatus([]int{a, b}, &completed))
		require.NoError(t, repo.SetStatus([]int{a, b}, &completed))

		assert.Equal(t, domain.StatusCompleted, mustGet(t, repo, a).Status)
		assert.Equal(t, domain.StatusCompleted, mustGet(t, repo, b).Status)
	})

	t.Run("SetStatusMissingWritesNothing", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, "a")

		err := repo.SetStatus([]int{a, 99}, nil)

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
		assert.Equal(t, domain.StatusActive, mustGet(t, repo, a).Status)
	})

	t.Run("SetStatusDuplicateIDsTogglesOnce", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, "a")
		b := mustCreate(t, repo, "b")

		require.NoError(t, repo.SetStatus([]int{a, b, a, a}, nil))

		assert.Equal(t, domain.StatusCompleted, mustGet(t, repo, a).Status)
		assert.Equal(t, domain.StatusCompleted, mustGet(t, repo, b).Status)
	})

	t.Run("SetStatusEmptyIsNoop", func(t *testing.T) {
		repo := newRepo(t)
		assert.NoError(t, repo.SetStatus(nil, nil))
	})

	t.Run("Update", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, "a")
		b := mustCreate(t, repo, "b")

		require.NoError(t, repo.Update(a, "a (edited)", domain.StatusCompleted))

		got := mustGet(t, repo, a)
		assert.Equal(t, "a (edited)", got.Description)
		assert.Equal(t, domain.StatusCompleted, got.Status)
		other := mustGet(t, repo, b)
		assert.Equal(t, "b", other.Description)
		assert.Equal(t, domain.StatusActive, other.Status)
	})

	t.Run("CreateTrimsAndRejectsBlank", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Create("   ")
		assert.ErrorIs(t, err, domain.ErrEmptyDescription)
		tasks, err := repo.List()
		require.NoError(t, err)
		assert.Empty(t, tasks)

		id := mustCreate(t, repo, "  Buy milk \n")
		assert.Equal(t, "Buy milk", mustGet(t, repo, id).Description)
	})

	t.Run("UpdateRejectsBlank", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, "a")

		err := repo.Update(a, "\t ", domain.StatusCompleted)

		assert.ErrorIs(t, err, domain.ErrEmptyDescription)
		got := mustGet(t, repo, a)
		assert.Equal(t, "a", got.Description)
		assert.Equal(t, domain.StatusActive, got.Status)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		repo := newRepo(t)
		err := repo.Update(5, "x", domain.StatusActive)
		assert.ErrorIs(t, err, domain.ErrTaskNotFound)

		tasks, err := repo.List()
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("DeleteIsIdempotent", func(t *testing.T) {
		repo := newRepo(t)
		a := mustCreate(t, repo, "a")
		b := mustCreate(t, repo, "b")
		c := mustCreate(t, repo, "c")

		require.NoError(t, repo.Delete([]int{a, c, 100}))

		tasks, err := repo.List()
		require.NoError(t, err)
		assert.Equal(t, []int{b}, taskIDs(tasks))

		require.NoError(t, repo.Delete([]int{a, c, 100}))
		tasks, err = repo.List()
		require.NoError(t, err)
		assert.Len(t, tasks, 1)

		assert.NoError(t, repo.Delete(nil))
	})
}

func mustCreate(t *testing.T, repo domain.TaskRepository, description string) int {
	t.Helper()
	id, err := repo.Create(description)
	require.NoError(t, err)
	return id
}

func mustGet(t *testing.T, repo domain.TaskRepository, id int) *domain.Task {
	t.Helper()
	task, err := repo.Get(id)
	require.NoError(t, err)
	return task
}

func taskIDs(tasks []*domain.Task) []int {
	ids := make([]int, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}
