package dao

import (
	"context"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vadim/linkedin-mcp/internal/domain/post/entity"
	"github.com/vadim/linkedin-mcp/internal/storage/jsonfile"
)

// PostsFile is the file name of the JSON post store inside the data directory
const PostsFile = "posts.json"

// PostJSON implements PostRepository on a single JSON file.
// The file is re-read on every call so edits made by other processes are picked up.
type PostJSON struct {
	path string
	mu   sync.Mutex
}

// NewPostJSON creates a JSON file repository under dataDir
func NewPostJSON(dataDir string) *PostJSON {
	return &PostJSON{path: filepath.Join(dataDir, PostsFile)}
}

// Save inserts or replaces a post
func (r *PostJSON) Save(ctx context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range posts {
		if posts[i].ID == post.ID {
			posts[i] = *post
			replaced = true
			break
		}
	}
	if !replaced {
		posts = append(posts, *post)
	}

	return jsonfile.Save(r.path, posts, 0600)
}

// GetByID retrieves a post by ID
func (r *PostJSON) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].ID == id {
			return &posts[i], nil
		}
	}
	return nil, nil
}

// Delete removes a post
func (r *PostJSON) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load()
	if err != nil {
		return err
	}

	kept := posts[:0]
	for _, p := range posts {
		if p.ID != id {
			kept = append(kept, p)
		}
	}

	return jsonfile.Save(r.path, kept, 0600)
}

// List retrieves posts matching the filter
func (r *PostJSON) List(ctx context.Context, filter PostFilter) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load()
	if err != nil {
		return nil, err
	}

	out := make([]entity.Post, 0, len(posts))
	for i := range posts {
		if matches(&posts[i], filter) {
			out = append(out, posts[i])
		}
	}
	sortByCreated(out)

	return out, nil
}

// GetDue retrieves scheduled posts that are due at now
func (r *PostJSON) GetDue(ctx context.Context, now time.Time) ([]entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	posts, err := r.load()
	if err != nil {
		return nil, err
	}

	var due []entity.Post
	for i := range posts {
		if posts[i].IsDue(now) {
			due = append(due, posts[i])
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].ScheduledAt.Before(*due[j].ScheduledAt)
	})

	return due, nil
}

func (r *PostJSON) load() ([]entity.Post, error) {
	var posts []entity.Post
	if _, err := jsonfile.Load(r.path, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func sortByCreated(posts []entity.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
}
