package telemetry

// safeSend writes data to ch without blocking and without panicking if
// ch has already been closed by a concurrent unregister. Mirrors the
// teacher's wsutil.SafeSend: a slow or gone client must never be able
// to stall the hub's broadcast loop.
func safeSend(ch chan []byte, data []byte) {
	defer func() {
		recover()
	}()

	select {
	case ch <- data:
	default:
	}
}
