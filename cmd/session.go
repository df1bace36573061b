package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/josephgoksu/TaskBoard/internal/api"
	"github.com/josephgoksu/TaskBoard/internal/app"
	"github.com/josephgoksu/TaskBoard/internal/cache"
	"github.com/josephgoksu/TaskBoard/internal/config"
	"github.com/josephgoksu/TaskBoard/internal/ui"
	"github.com/josephgoksu/TaskBoard/internal/util"
	"github.com/josephgoksu/TaskBoard/internal/view"
	"github.com/josephgoksu/TaskBoard/models"
	"github.com/josephgoksu/TaskBoard/store"
	"github.com/spf13/cobra"
)

// session wires one command run: a fresh store, the facade over the
// backend client, the list controller and, when enabled, the snapshot
// cache.
type session struct {
	store  *store.Store
	app    *app.TaskApp
	ctrl   *view.Controller
	cache  *cache.Snapshot
	detach func()
	loaded bool
	errOut io.Writer
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg := GetConfig()

	client, err := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		UserAgent: userAgent(cfg.API.UserAgent),
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	st := store.New()
	s := &session{
		store:  st,
		app:    app.NewTaskApp(client, st, app.WithClock(nowFunc)),
		errOut: cmd.ErrOrStderr(),
	}
	s.ctrl = view.NewController(s.app, viewStateFromConfig(cfg.View))

	if cfg.Cache.Enabled || cfg.Offline {
		snap, err := cache.Open(config.GetCacheBasePath(), cache.WithClock(nowFunc))
		if err != nil {
			// the cache is an aid, never a reason to fail
			LogError("snapshot cache unavailable", err)
		} else {
			s.cache = snap
		}
	}
	return s, nil
}

func userAgent(configured string) string {
	if configured != "" {
		return configured
	}
	return "taskboard/" + version
}

func (s *session) Close() {
	s.ctrl.Close()
	if s.detach != nil {
		s.detach()
	}
	if s.cache != nil {
		_ = s.cache.Close()
	}
}

// load fills the store with tasks, users and categories. A list the backend
// fails to return is taken from the snapshot, when there is one, with a
// warning. Lists the backend did return are never replaced by cached ones.
func (s *session) load(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	if isOffline() {
		if err := s.hydrate(ctx, nil); err != nil {
			return err
		}
		s.loaded = true
		return nil
	}

	var res view.LoadErrors
	_ = ui.WithSpinner(s.errOut, "Loading tasks...", showProgress(), func() error {
		res = s.ctrl.LoadAll(ctx)
		return res.Err()
	})
	err := res.Err()
	if err == nil {
		s.loaded = true
		s.attachCache()
		return nil
	}
	if s.cache == nil {
		return err
	}

	if res.Tasks != nil {
		if hydrateErr := s.hydrate(ctx, err); hydrateErr != nil {
			if errors.Is(hydrateErr, cache.ErrNoSnapshot) {
				return err
			}
			return errors.Join(err, hydrateErr)
		}
		s.loaded = true
		return nil
	}

	// the task list is fresh; only reference data comes from the snapshot
	if restoreErr := s.restoreReference(ctx, res); restoreErr != nil {
		if errors.Is(restoreErr, cache.ErrNoSnapshot) {
			return err
		}
		return errors.Join(err, restoreErr)
	}
	s.loaded = true
	s.attachCache()
	return nil
}

// restoreReference fills the users and categories that failed to load from
// the snapshot.
func (s *session) restoreReference(ctx context.Context, res view.LoadErrors) error {
	state, savedAt, err := s.cache.Load(ctx)
	if err != nil {
		return err
	}
	var lists []string
	if res.Users != nil {
		s.store.Dispatch(store.SetUsers{Users: state.Users})
		lists = append(lists, "users")
	}
	if res.Categories != nil {
		s.store.Dispatch(store.SetCategories{Categories: state.Categories})
		lists = append(lists, "categories")
	}
	if !isQuiet() {
		ui.RenderPartialWarning(s.errOut, lists, res.Err(), savedAt, nowFunc())
	}
	return nil
}

// showProgress reports whether a spinner may draw on stderr.
func showProgress() bool {
	return interactive() && !isJSON() && !isQuiet()
}

// restore replaces the store contents with the cached snapshot and
// returns when it was saved.
func (s *session) restore(ctx context.Context) (time.Time, error) {
	if s.cache == nil {
		return time.Time{}, cache.ErrNoSnapshot
	}
	state, savedAt, err := s.cache.Load(ctx)
	if err != nil {
		return time.Time{}, err
	}
	s.store.Dispatch(store.SetTasks{Tasks: state.Tasks})
	s.store.Dispatch(store.SetUsers{Users: state.Users})
	s.store.Dispatch(store.SetCategories{Categories: state.Categories})
	return savedAt, nil
}

// hydrate restores the snapshot and warns that the data may be stale.
func (s *session) hydrate(ctx context.Context, cause error) error {
	savedAt, err := s.restore(ctx)
	if err != nil {
		return err
	}
	if !isQuiet() {
		ui.RenderStaleWarning(s.errOut, cause, savedAt, nowFunc())
	}
	return nil
}

// attachCache saves every state from now on. It is only called after a
// successful remote load so a partial state never replaces the snapshot.
func (s *session) attachCache() {
	if s.cache == nil || s.detach != nil {
		return
	}
	s.detach = s.cache.Attach(s.store)
	if err := s.cache.Save(context.Background(), s.store.GetState()); err != nil {
		LogError("failed to save snapshot", err)
	}
}

// requireOnline rejects backend writes in offline mode.
func (s *session) requireOnline() error {
	if isOffline() {
		return ErrOffline
	}
	return nil
}

// resolveTask loads the list and resolves an id or unique id prefix.
func (s *session) resolveTask(ctx context.Context, idOrPrefix string) (models.Task, error) {
	if err := s.load(ctx); err != nil {
		return models.Task{}, err
	}
	state := s.store.GetState()
	id, err := util.ResolveTaskID(state.Tasks, idOrPrefix)
	if err != nil {
		return models.Task{}, err
	}
	task, _ := state.FindTask(id)
	return task, nil
}
