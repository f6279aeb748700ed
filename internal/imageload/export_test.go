package imageload

// PendingKeys reports how many keys still have a load in flight.
func PendingKeys(l *Loader) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.latest)
}
