package config

type WorkerKeyStruct struct {
	PendingWritesQueue string
}

// WorkerKey names the retry queues. The names double as the keys under which
// pending writes are parked in the KV store until they succeed.
var WorkerKey = &WorkerKeyStruct{
	PendingWritesQueue: "gate_prep_pending_writes",
}
