package clock

// StopTimer stops timer and drains its channel if needed.
func StopTimer(t Timer) {
	if !t.Stop() {
		select {
		case <-t.C():
		default:
		}
	}
}
