package usecase

// wipeScope says what to erase in the backing store before a write
type wipeScope int

const (
	wipeNone wipeScope = iota
	wipeKey            // delete the collection key
	wipeNamespace      // clear every key in the namespace
)

type writeRequest struct {
	version uint64
	blob    []byte
	wipe    wipeScope
	done    chan error
}

// writeQueue is the single writer for the backing store. Requests are
// enqueued in version order; whatever is already queued when the writer
// wakes up is coalesced so only the newest blob is written.
type writeQueue struct {
	requests chan writeRequest
	stopped  chan struct{}
	write    func(version uint64, blob []byte, wipe wipeScope) error
}

func newWriteQueue(size int, write func(version uint64, blob []byte, wipe wipeScope) error) *writeQueue {
	q := &writeQueue{
		requests: make(chan writeRequest, size),
		stopped:  make(chan struct{}),
		write:    write,
	}
	go q.run()
	return q
}

// enqueue hands a snapshot to the writer. The returned channel receives
// the result of the write that covers this version.
func (q *writeQueue) enqueue(version uint64, blob []byte, wipe wipeScope) <-chan error {
	done := make(chan error, 1)
	q.requests <- writeRequest{version: version, blob: blob, wipe: wipe, done: done}
	return done
}

// close stops accepting requests and waits for the queued ones to finish
func (q *writeQueue) close() {
	close(q.requests)
	<-q.stopped
}

func (q *writeQueue) run() {
	defer close(q.stopped)
	for req := range q.requests {
		batch := []writeRequest{req}
	drain:
		for {
			select {
			case next, ok := <-q.requests:
				if !ok {
					break drain
				}
				batch = append(batch, next)
			default:
				break drain
			}
		}

		wipe := wipeNone
		for _, r := range batch {
			if r.wipe > wipe {
				wipe = r.wipe
			}
		}
		latest := batch[len(batch)-1]
		err := q.write(latest.version, latest.blob, wipe)
		for _, r := range batch {
			r.done <- err
		}
	}
}
