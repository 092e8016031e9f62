package wizard

import (
	"context"
	"sync"

	"MultiStepForm/internal/form"
)

// Persister 表单记录的持久化接口，由 persistence.Adapter 实现
type Persister interface {
	Save(ctx context.Context, rec form.Record) error
	Load(ctx context.Context) (form.Record, bool)
}

// State 向导状态快照
type State struct {
	Step   Step        `json:"step"`
	Record form.Record `json:"record"`
}

// Store 持有当前步骤和累积的表单记录，只能通过 Advance / Retreat / MergeUpdate 修改
type Store struct {
	mu      sync.Mutex
	step    Step
	record  form.Record
	persist Persister
}

// NewStore 读取一次持久化数据作为初始记录，没有数据时使用默认记录。
// step 非法时从第一步开始。
func NewStore(ctx context.Context, persist Persister, step Step) *Store {
	if !step.Valid() {
		step = First()
	}

	rec, ok := persist.Load(ctx)
	if !ok {
		rec = form.DefaultRecord()
	}

	return &Store{
		step:    step,
		record:  rec,
		persist: persist,
	}
}

// Step 当前步骤
func (s *Store) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// Snapshot 返回当前状态的拷贝
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Step: s.step, Record: s.record.Clone()}
}

// Advance 前进一步，已在最后一步时不变。返回步骤是否变化。
func (s *Store) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.step.Next()
	changed := next != s.step
	s.step = next
	return changed
}

// Retreat 后退一步，已在第一步时不变。返回步骤是否变化。
func (s *Store) Retreat() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.step.Previous()
	changed := prev != s.step
	s.step = prev
	return changed
}

// MergeUpdate 把 patch 浅合并到当前记录，先持久化再替换内存状态。
// 写入失败时内存状态保持不变并返回错误。
func (s *Store) MergeUpdate(ctx context.Context, patch form.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.record.Clone()
	patch.Apply(&merged)

	if err := s.persist.Save(ctx, merged); err != nil {
		return err
	}

	s.record = merged
	return nil
}
