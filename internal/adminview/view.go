// Package adminview maintains the derived projection behind the admin
// dashboard: a cached snapshot of the user directory and the work item
// ledger, refreshed whenever the change feed reports a row change.
package adminview

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/launchdesk/portal/internal/api/metrics"
	"github.com/launchdesk/portal/internal/core/domain"
	"github.com/launchdesk/portal/internal/core/ports"
)

// View is the read-mostly projection. Refreshes run on a single goroutine fed
// by a coalescing channel, so a burst of change notifications triggers at
// most one queued refresh.
type View struct {
	profiles ports.ProfileRepository
	items    ports.WorkItemRepository
	feed     ports.ChangeFeed
	log      zerolog.Logger

	mu        sync.RWMutex
	users     []*domain.Profile
	workItems map[string]*domain.WorkItem

	refreshCh   chan struct{}
	unsubscribe []func()
}

func New(profiles ports.ProfileRepository, items ports.WorkItemRepository, feed ports.ChangeFeed, log zerolog.Logger) *View {
	return &View{
		profiles:  profiles,
		items:     items,
		feed:      feed,
		log:       log,
		workItems: make(map[string]*domain.WorkItem),
		refreshCh: make(chan struct{}, 1),
	}
}

// Start performs the initial load, subscribes to both collections, and
// launches the refresh worker. Workers stop when ctx is cancelled.
func (v *View) Start(ctx context.Context) error {
	if err := v.refresh(ctx); err != nil {
		return err
	}

	for _, collection := range []string{"users_meta", "work_items"} {
		unsub, err := v.feed.Subscribe(ctx, collection, v.notify)
		if err != nil {
			v.Stop()
			return err
		}
		v.unsubscribe = append(v.unsubscribe, unsub)
	}

	go v.run(ctx)
	return nil
}

// Stop tears down the change feed subscriptions.
func (v *View) Stop() {
	for _, unsub := range v.unsubscribe {
		unsub()
	}
	v.unsubscribe = nil
}

// notify requests a refresh. Non-blocking: if one is already queued the
// notification coalesces into it.
func (v *View) notify() {
	select {
	case v.refreshCh <- struct{}{}:
	default:
	}
}

func (v *View) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-v.refreshCh:
			if err := v.refresh(ctx); err != nil {
				// Keep serving the last-known-good snapshot.
				metrics.AdminViewRefreshesTotal.WithLabelValues("error").Inc()
				v.log.Error().Err(err).Msg("admin view refresh failed")
			}
		}
	}
}

func (v *View) refresh(ctx context.Context) error {
	users, err := v.profiles.List(ctx)
	if err != nil {
		return err
	}
	items, err := v.items.List(ctx, ports.WorkItemFilter{})
	if err != nil {
		return err
	}

	v.mu.Lock()
	v.users = users
	fresh := make(map[string]*domain.WorkItem, len(items))
	for _, item := range items {
		// A realtime snapshot may lag a local optimistic write; the newer
		// UpdatedAt wins so stale feed data cannot roll a review back.
		if local, ok := v.workItems[item.ID]; ok && local.UpdatedAt.After(item.UpdatedAt) {
			fresh[item.ID] = local
			continue
		}
		fresh[item.ID] = item
	}
	v.workItems = fresh
	v.mu.Unlock()

	metrics.AdminViewRefreshesTotal.WithLabelValues("ok").Inc()
	return nil
}

// ApplyLocal folds a just-written work item into the snapshot ahead of the
// change feed catching up.
func (v *View) ApplyLocal(item *domain.WorkItem) {
	if item == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if existing, ok := v.workItems[item.ID]; ok && existing.UpdatedAt.After(item.UpdatedAt) {
		return
	}
	v.workItems[item.ID] = item
}

// Snapshot returns the current projection with review-state counts.
func (v *View) Snapshot() ports.AdminOverview {
	v.mu.RLock()
	defer v.mu.RUnlock()

	users := make([]*domain.Profile, len(v.users))
	copy(users, v.users)

	items := make([]*domain.WorkItem, 0, len(v.workItems))
	overview := ports.AdminOverview{Users: users}
	for _, item := range v.workItems {
		items = append(items, item)
		switch item.Status {
		case domain.StatusPending:
			overview.Pending++
		case domain.StatusAccepted:
			overview.Accepted++
		case domain.StatusRejected:
			overview.Rejected++
		}
	}
	overview.WorkItems = items
	return overview
}
