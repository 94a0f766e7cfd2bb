// Package session 管理编辑会话：每个会话持有一份完整的简历文档。
// 存储完全驻留内存，进程重启即丢失，与导出产物的对象存储互不影响。
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"rgResume/internal/resume"
)

// ErrNotFound 表示会话不存在或已被回收。
var ErrNotFound = errors.New("session not found")

type entry struct {
	doc       resume.Document
	updatedAt time.Time
}

// Store 是并发安全的内存会话仓库。
// 所有读写都以深拷贝交接，调用方拿到的文档与仓库内部状态互不共享。
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

// NewStore 创建空仓库。
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// Create 新建会话并放入一份空白文档，返回会话 ID 与文档快照。
func (s *Store) Create() (string, resume.Document) {
	return s.put(resume.NewDocument())
}

// CreateSample 新建会话并放入示例文档。
func (s *Store) CreateSample() (string, resume.Document) {
	return s.put(resume.SampleDocument())
}

func (s *Store) put(doc resume.Document) (string, resume.Document) {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &entry{doc: doc, updatedAt: s.now()}
	s.mu.Unlock()
	return id, doc.Clone()
}

// Get 返回会话文档的快照。
func (s *Store) Get(id string) (resume.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.sessions[id]
	if !ok {
		return resume.Document{}, ErrNotFound
	}
	return e.doc.Clone(), nil
}

// Replace 以整份文档替换会话内容。区块顺序非法时拒绝写入。
func (s *Store) Replace(id string, doc resume.Document) error {
	if !resume.ValidOrder(doc.SectionOrder) {
		return errors.New("section order is not a permutation of the known sections")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return ErrNotFound
	}
	e.doc = doc.Clone()
	e.updatedAt = s.now()
	return nil
}

// LoadSample 将会话内容重置为示例文档，返回新的快照。
func (s *Store) LoadSample(id string) (resume.Document, error) {
	return s.Mutate(id, func(resume.Document) resume.Document {
		return resume.SampleDocument()
	})
}

// Mutate 在仓库锁内对会话文档应用一次纯函数变换，返回变换后的快照。
// 读改写在同一临界区完成，并发编辑不会彼此覆盖。
func (s *Store) Mutate(id string, apply func(resume.Document) resume.Document) (resume.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.sessions[id]
	if !ok {
		return resume.Document{}, ErrNotFound
	}
	e.doc = apply(e.doc.Clone())
	e.updatedAt = s.now()
	return e.doc.Clone(), nil
}

// Delete 移除会话。不存在时为 no-op。
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len 返回当前会话数，暴露给指标采集。
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep 回收闲置超过 ttl 的会话，返回被回收的会话 ID，
// 调用方据此清理对象存储里的导出产物。
func (s *Store) Sweep(ttl time.Duration) []string {
	cutoff := s.now().Add(-ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed []string
	for id, e := range s.sessions {
		if e.updatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}
