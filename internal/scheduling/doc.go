// Package scheduling holds the pure rules behind appointment booking: time
// arithmetic, availability checks, conflict detection, token allocation and
// the reschedule state machine. Nothing here touches storage.
package scheduling
