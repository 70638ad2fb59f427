package notification

import (
	"context"
	"mindlog/internal/core/domain/user"
	"sync"
)

type FakeNotifier struct {
	lock          sync.Mutex
	Notifications []Notification
	NotifyError   error
}

func NewFakeNotifier() *FakeNotifier {
	return &FakeNotifier{}
}

func (n *FakeNotifier) Notify(ctx context.Context, notification Notification) error {
	n.lock.Lock()
	defer n.lock.Unlock()
	if n.NotifyError != nil {
		return n.NotifyError
	}
	n.Notifications = append(n.Notifications, notification)
	return nil
}

func (n *FakeNotifier) Sent() []Notification {
	n.lock.Lock()
	defer n.lock.Unlock()
	sent := make([]Notification, len(n.Notifications))
	copy(sent, n.Notifications)
	return sent
}

type FakePermissionRepository struct {
	lock        sync.Mutex
	Permissions map[user.ID]Permission
	GetError    error
	SetError    error
}

func NewFakePermissionRepository() *FakePermissionRepository {
	return &FakePermissionRepository{Permissions: make(map[user.ID]Permission)}
}

func (r *FakePermissionRepository) Get(ctx context.Context, userID user.ID) (Permission, error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.GetError != nil {
		return PermissionDefault, r.GetError
	}
	p, ok := r.Permissions[userID]
	if !ok {
		return PermissionDefault, nil
	}
	return p, nil
}

func (r *FakePermissionRepository) Set(ctx context.Context, userID user.ID, permission Permission) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.SetError != nil {
		return r.SetError
	}
	r.Permissions[userID] = permission
	return nil
}
