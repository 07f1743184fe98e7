package rpc

func (e *Engine) isClosed() bool {
	e.mux.Lock()
	defer e.mux.Unlock()
	return e.closed
}

// Close gracefully closes the engine.
// All pending requests will be awaited.
// All Do method calls of closed engine will return ErrEngineClosed error.
func (e *Engine) Close() {
	e.mux.Lock()
	e.closed = true
	e.mux.Unlock()

	e.log.Info("Close called")
	e.wg.Wait()
	e.closeCtx()
}

// ForceClose forcibly closes the engine.
// All pending requests will be unblocked with ErrEngineClosed error.
func (e *Engine) ForceClose() {
	e.mux.Lock()
	e.closed = true
	e.mux.Unlock()

	e.closeCtx()
	e.wg.Wait()
}
