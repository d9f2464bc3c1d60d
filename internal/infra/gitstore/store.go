// Package gitstore provides a Git plumbing-based implementation of TaskRepository.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"gopkg.in/yaml.v3"

	"github.com/runoshun/taskman/internal/domain"
)

// Ensure Store implements the domain ports.
var (
	_ domain.TaskRepository   = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// Store implements domain.TaskRepository using Git plumbing (refs and blobs).
// Tasks live outside any branch, so they never show up in the working tree.
//
// Data structure:
//
//	refs/<namespace>/
//	  meta        → blob (nextTaskID)
//	  initialized → blob marker
//	  tasks/
//	    <id>      → blob (task YAML)
type Store struct {
	repo      *git.Repository
	namespace string // e.g., "taskman"
	mu        sync.RWMutex
}

// meta contains store metadata.
type meta struct {
	NextTaskID int `yaml:"nextTaskID"`
}

// New opens the repository at repoPath (searching parent directories).
func New(repoPath, namespace string) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", repoPath, domain.ErrNotGitRepository)
		}
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, namespace), nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Store {
	if namespace == "" {
		namespace = domain.DefaultGitNamespace
	}
	return &Store{
		repo:      repo,
		namespace: namespace,
	}
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

// taskRef returns the ref name for a task.
func (s *Store) taskRef(id int) plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "tasks/" + strconv.Itoa(id))
}

// metaRef returns the ref name for metadata.
func (s *Store) metaRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "meta")
}

// initializedRef returns the ref name for the initialized marker.
func (s *Store) initializedRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "initialized")
}

// Create inserts a new active task and returns its ID.
func (s *Store) Create(description string) (int, error) {
	description, err := domain.NormalizeDescription(description)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.loadMeta()
	if err != nil {
		return 0, err
	}
	id := m.NextTaskID

	task := &domain.Task{ID: id, Description: description, Status: domain.StatusActive}
	if err := s.saveTask(task); err != nil {
		return 0, err
	}

	m.NextTaskID++
	if err := s.saveMeta(m); err != nil {
		_ = s.repo.Storer.RemoveReference(s.taskRef(id))
		return 0, err
	}

	return id, nil
}

// List returns all tasks ordered by ID.
func (s *Store) List() ([]*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var tasks []*domain.Task
	prefix := s.refPrefix() + "tasks/"

	refs, err := s.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list refs: %w", err)
	}

	err = refs.ForEach(func(ref *plumbing.Reference) error {
		refName := ref.Name().String()
		if !strings.HasPrefix(refName, prefix) {
			return nil
		}

		taskID, parseErr := strconv.Atoi(strings.TrimPrefix(refName, prefix))
		if parseErr != nil {
			return nil // Skip invalid refs
		}

		task, readErr := s.readTask(ref.Hash())
		if readErr != nil {
			return readErr
		}
		task.ID = taskID
		tasks = append(tasks, task)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sort by ID for consistent ordering
	slices.SortFunc(tasks, func(a, b *domain.Task) int {
		return a.ID - b.ID
	})

	return tasks, nil
}

// Get retrieves a task by ID.
func (s *Store) Get(id int) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getLocked(id)
}

// SetStatus sets or toggles the status of each task in ids.
// All tasks are read before any ref moves; a failed ref update restores
// the refs already written.
func (s *Store) SetStatus(ids []int, status *domain.Status) error {
	if len(ids) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ids = domain.UniqueIDs(ids)
	updated := make([]*domain.Task, 0, len(ids))
	for _, id := range ids {
		task, err := s.getLocked(id)
		if err != nil {
			return fmt.Errorf("task #%d: %w", id, err)
		}
		if status != nil {
			task.Status = *status
		} else {
			task.Status = task.Status.Toggle()
		}
		updated = append(updated, task)
	}

	originals := make([]*plumbing.Reference, 0, len(updated))
	for _, task := range updated {
		orig, err := s.repo.Reference(s.taskRef(task.ID), true)
		if err != nil {
			return fmt.Errorf("get task ref: %w", err)
		}
		if err := s.saveTask(task); err != nil {
			s.restoreRefs(originals)
			return err
		}
		originals = append(originals, orig)
	}

	return nil
}

// Update overwrites description and status of a task.
func (s *Store) Update(id int, description string, status domain.Status) error {
	description, err := domain.NormalizeDescription(description)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.getLocked(id)
	if err != nil {
		return err
	}
	task.Description = description
	task.Status = status
	return s.saveTask(task)
}

// Delete removes the given tasks. Missing IDs are ignored.
func (s *Store) Delete(ids []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		if err := s.repo.Storer.RemoveReference(s.taskRef(id)); err != nil {
			if !errors.Is(err, plumbing.ErrReferenceNotFound) {
				return fmt.Errorf("remove task ref: %w", err)
			}
		}
	}
	return nil
}

// Initialize creates initial metadata if it doesn't exist.
// If meta exists but NextTaskID is less than max existing task ID, it updates NextTaskID.
// Returns true if anything was written.
func (s *Store) Initialize() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false

	// Always repair meta if NextTaskID is inconsistent
	minNextID := s.calculateNextTaskID()
	m, err := s.loadMeta()
	if err != nil {
		return false, fmt.Errorf("load meta: %w", err)
	}
	if m.NextTaskID < minNextID {
		m.NextTaskID = minNextID
		if err := s.saveMeta(m); err != nil {
			return false, err
		}
		changed = true
	}

	_, err = s.repo.Reference(s.initializedRef(), true)
	if err == nil {
		return changed, nil
	}
	if !errors.Is(err, plumbing.ErrReferenceNotFound) {
		return false, fmt.Errorf("check initialized ref: %w", err)
	}

	hash, err := s.writeBlob([]byte("initialized"))
	if err != nil {
		return false, err
	}
	ref := plumbing.NewHashReference(s.initializedRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return false, fmt.Errorf("set initialized ref: %w", err)
	}
	if err := s.saveMeta(m); err != nil {
		return false, err
	}

	return true, nil
}

// IsInitialized checks if the store has been initialized.
func (s *Store) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, err := s.repo.Reference(s.initializedRef(), true)
	return err == nil
}

func (s *Store) getLocked(id int) (*domain.Task, error) {
	ref, err := s.repo.Reference(s.taskRef(id), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task ref: %w", err)
	}

	task, err := s.readTask(ref.Hash())
	if err != nil {
		return nil, err
	}
	task.ID = id
	return task, nil
}

func (s *Store) readTask(hash plumbing.Hash) (*domain.Task, error) {
	data, err := s.readBlob(hash)
	if err != nil {
		return nil, fmt.Errorf("read task: %w", err)
	}

	var task domain.Task
	if err := yaml.Unmarshal(data, &task); err != nil {
		return nil, fmt.Errorf("decode task: %w", err)
	}
	return &task, nil
}

func (s *Store) saveTask(task *domain.Task) error {
	data, err := yaml.Marshal(task)
	if err != nil {
		return fmt.Errorf("marshal task: %w", err)
	}

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(s.taskRef(task.ID), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set task ref: %w", err)
	}
	return nil
}

// restoreRefs puts back refs captured before a failed batch update.
func (s *Store) restoreRefs(refs []*plumbing.Reference) {
	for _, ref := range refs {
		_ = s.repo.Storer.SetReference(ref)
	}
}

func (s *Store) loadMeta() (*meta, error) {
	ref, err := s.repo.Reference(s.metaRef(), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Meta ref doesn't exist - calculate NextTaskID from existing tasks
			return &meta{NextTaskID: s.calculateNextTaskID()}, nil
		}
		return nil, fmt.Errorf("get meta ref: %w", err)
	}

	data, err := s.readBlob(ref.Hash())
	if err != nil {
		return nil, fmt.Errorf("read meta: %w", err)
	}

	var m meta
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode meta: %w", err)
	}
	if m.NextTaskID < 1 {
		m.NextTaskID = s.calculateNextTaskID()
	}
	return &m, nil
}

func (s *Store) saveMeta(m *meta) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal meta: %w", err)
	}

	hash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	ref := plumbing.NewHashReference(s.metaRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set meta ref: %w", err)
	}
	return nil
}

// calculateNextTaskID finds the maximum task ID from existing tasks and returns max+1.
// Returns 1 if no tasks exist.
func (s *Store) calculateNextTaskID() int {
	maxID := 0

	iter, err := s.repo.References()
	if err != nil {
		return 1
	}

	prefix := s.refPrefix() + "tasks/"
	_ = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		if id, parseErr := strconv.Atoi(strings.TrimPrefix(name, prefix)); parseErr == nil && id > maxID {
			maxID = id
		}
		return nil
	})

	return maxID + 1
}

// writeBlob writes data to a blob and returns the hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads the content of a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read blob data: %w", err)
	}
	return data, nil
}
