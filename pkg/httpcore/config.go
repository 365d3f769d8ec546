package httpcore

import "time"

// ServerConfig holds the per-connection tunables spec.md §5 and §6
// call out explicitly: timeouts, size limits, the spool directory, and
// the read buffer's growth increment. A ServerConfig is cheap to copy
// and every connection gets its own copy so handlers can't observe one
// another's mutations (none are exposed for mutation today, but the
// copy keeps that invariant cheap to keep).
type ServerConfig struct {
	// UploadDirectory is where multipart file parts are spooled.
	UploadDirectory string
	// ReadTimeout bounds how long a connection may sit idle while a
	// request head or body is awaited.
	ReadTimeout time.Duration
	// WriteTimeout bounds how long writing a response may take.
	WriteTimeout time.Duration
	// ChunkSize is the maximum slice length used both for chunked
	// transfer-encoding frames and for lazy file-body streaming reads.
	ChunkSize int
	// MaxBodySize bounds non-multipart request bodies; exceeding it
	// yields BodyTooLarge without invoking a handler.
	MaxBodySize int
	// MaxHeaderSize bounds the request head (request line + headers)
	// before ErrHeadTooLarge is returned.
	MaxHeaderSize int
	// ReadBuffIncreaseSize is how much the head/body scan buffers grow
	// per short read.
	ReadBuffIncreaseSize int
	// OpenLog enables structured request logging via internal/logx.
	OpenLog bool
}

// DefaultConfig returns the engine's out-of-the-box tunables.
func DefaultConfig() ServerConfig {
	return ServerConfig{
		UploadDirectory:      "./uploads",
		ReadTimeout:          30 * time.Second,
		WriteTimeout:         30 * time.Second,
		ChunkSize:            64 * 1024,
		MaxBodySize:          10 * 1024 * 1024,
		MaxHeaderSize:        16 * 1024,
		ReadBuffIncreaseSize: 4096,
		OpenLog:              false,
	}
}
