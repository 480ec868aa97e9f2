package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/logistics/pkg/metrics"
)

func (e *entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// evict — сначала истёкшие записи с хвоста, иначе наименее используемая.
func (s *Store) evict(now time.Time) {
	for back := s.ll.Back(); back != nil; back = back.Prev() {
		if back.Value.(*entry).expired(now) {
			s.removeElement(back)
			metrics.CacheOps.WithLabelValues("expired").Inc()
			return
		}
	}
	if back := s.ll.Back(); back != nil {
		s.removeElement(back)
		metrics.CacheOps.WithLabelValues("evicted").Inc()
	}
}

// removeElement — удаляет элемент из списка и индекса (под mu).
func (s *Store) removeElement(elem *list.Element) {
	ent := elem.Value.(*entry)
	delete(s.index, ent.key)
	s.ll.Remove(elem)
}

func (s *Store) reportSize() {
	metrics.CacheSize.Set(float64(s.ll.Len()))
}
