package qcrypto

//
// Errors and logging
//

import (
	"errors"
	"fmt"
)

// ErrCryptoFail is the single error kind returned for every crypto-path
// failure: a length mismatch at construction, an HKDF failure, an AEAD
// authentication failure, an AEAD or stream-cipher init failure, or a
// buffer too small for the requested operation.
//
// The packet layer is expected to treat any error wrapping ErrCryptoFail as
// "drop the packet" (on the Open path) or "fatal" (on the Seal or
// derive-next-key paths). No error wrapping ErrCryptoFail carries detail
// beyond the message attached at the call site: detail that depends on
// secret material is deliberately suppressed to avoid leaking an oracle.
var ErrCryptoFail = errors.New("qcrypto: crypto operation failed")

// newCryptoFail wraps ErrCryptoFail with a short, non-secret-dependent
// description.
func newCryptoFail(message string) error {
	return fmt.Errorf("%w: %s", ErrCryptoFail, message)
}

// Logger is the logger used by [Open] and [Seal] for non-sensitive
// lifecycle events (key derivation, key update). It is satisfied directly
// by *github.com/apex/log.Logger. Secret material (keys, IVs, plaintext,
// ciphertext) is never passed to any of these methods.
type Logger interface {
	// Debugf formats and emits a debug message.
	Debugf(format string, v ...any)

	// Debug emits a debug message.
	Debug(message string)

	// Infof formats and emits an informational message.
	Infof(format string, v ...any)

	// Info emits an informational message.
	Info(message string)

	// Warnf formats and emits a warning message.
	Warnf(format string, v ...any)

	// Warn emits a warning message.
	Warn(message string)
}

// nullLogger is a [Logger] that does not emit logs. It is the default
// logger used by [Open] and [Seal] when the caller does not supply one
// via WithOpenLogger or WithSealLogger.
type nullLogger struct{}

func (*nullLogger) Debug(message string)            {}
func (*nullLogger) Debugf(format string, v ...any)   {}
func (*nullLogger) Info(message string)              {}
func (*nullLogger) Infof(format string, v ...any)    {}
func (*nullLogger) Warn(message string)              {}
func (*nullLogger) Warnf(format string, v ...any)    {}

var _ Logger = &nullLogger{}
