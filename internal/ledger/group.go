package ledger

import (
	"github.com/betbot/fluxbet/internal/addressing"
	"github.com/betbot/fluxbet/internal/domain"
	"github.com/betbot/fluxbet/pkg/logger"
)

// CreateGroup 创建群组。群主自动成为第 0 位成员，没有档案的话惰性创建。
func (e *Engine) CreateGroup(admin domain.Principal, name, description string) (*domain.Group, addressing.Key, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.Begin(true)
	defer txn.Discard()

	platform, err := loadPlatform(txn)
	if err != nil {
		return nil, addressing.Key{}, err
	}

	key := addressing.Group(string(admin), name)
	exists, err := txn.Has(key)
	if err != nil {
		return nil, addressing.Key{}, err
	}
	if exists {
		return nil, addressing.Key{}, domain.ErrDuplicateGroup
	}

	group := &domain.Group{
		Name:        name,
		Description: description,
		Admin:       admin,
		Members:     []domain.Principal{admin},
		CreatedAt:   e.now(),
	}

	profile, created, err := e.ensureProfile(txn, admin)
	if err != nil {
		return nil, addressing.Key{}, err
	}
	profile.AddGroup(key.String())

	if created {
		platform.TotalUsers++
	}
	platform.TotalGroups++

	if err := txn.Set(key, group); err != nil {
		return nil, addressing.Key{}, err
	}
	if err := saveProfile(txn, profile); err != nil {
		return nil, addressing.Key{}, err
	}
	if err := txn.Set(addressing.Platform(), platform); err != nil {
		return nil, addressing.Key{}, err
	}
	if err := txn.Commit(); err != nil {
		return nil, addressing.Key{}, err
	}

	logger.Infof("[ledger] group created: name=%s admin=%s key=%s", name, admin, key)
	e.record("create_group", admin, key, 0)
	return group, key, nil
}

// JoinGroup 加入群组。重复加入报错，没有档案的话惰性创建。
func (e *Engine) JoinGroup(groupKey addressing.Key, user domain.Principal) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := e.store.Begin(true)
	defer txn.Discard()

	group, err := loadGroup(txn, groupKey)
	if err != nil {
		return err
	}
	if group.HasMember(user) {
		return domain.ErrAlreadyMember
	}

	group.Members = append(group.Members, user)

	profile, created, err := e.ensureProfile(txn, user)
	if err != nil {
		return err
	}
	profile.AddGroup(groupKey.String())

	if err := txn.Set(groupKey, group); err != nil {
		return err
	}
	if err := saveProfile(txn, profile); err != nil {
		return err
	}
	if created {
		platform, err := loadPlatform(txn)
		if err != nil {
			return err
		}
		platform.TotalUsers++
		if err := txn.Set(addressing.Platform(), platform); err != nil {
			return err
		}
	}
	if err := txn.Commit(); err != nil {
		return err
	}

	logger.Infof("[ledger] user joined group: user=%s group=%s", user, group.Name)
	e.record("join_group", user, groupKey, 0)
	return nil
}
