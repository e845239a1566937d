package memory

// LockCount número de candados retenidos por el store.
func (s *Store) LockCount() int {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	return len(s.locks)
}
