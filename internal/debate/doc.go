// Package debate implements the per-channel debate referee.
//
// A Session moves through three phases:
//
//   - Setup: created by an initiator, accepting joins on the pro and kontra sides
//   - Active: rounds are running and a turn timer is armed for the current round
//   - Ended: terminal; the final Summary stays readable through held references
//
// Sessions are owned by a Directory keyed by channel ID. Every command goes
// through the Directory, which serializes it on the target session's lock and
// reports ErrNotFound once the session has ended and been removed.
//
// # Timers
//
// Each round arms a TurnTimer. When it fires, the session re-checks under its
// lock that it is still active and still on the round the timer was armed for,
// so a stop racing with a natural expiry is a no-op rather than a second
// transition. A separate idle timer ends sessions that never leave Setup.
//
// # Notifications
//
// Round starts, round advances and terminal transitions are reported to a
// Notifier while the session lock is held. Implementations must not block.
package debate
