// Package models defines the core domain models for Fahrgeld.
//
// # Models
//
//   - Member: a person in the carpool roster
//   - TripRecord: one carpool day (driver + riders), at most one per date
//   - DailyFeeSchedule: the per-person daily fee, with at most one scheduled change
//   - SettlementResult: one member's computed row in a settlement
//   - SettlementSnapshot: an immutable saved settlement (auto or manual)
//   - AdminUser: an administrator account for the mutating API surface
//
// # Design Principles
//
//  1. **Snapshot semantics**: settlement rows embed the member name as it was
//     at computation time. Renaming or removing a member later must not change
//     saved history, so snapshots denormalize instead of joining live.
//  2. **Avoid circular references**: relationships use ID strings, not pointers.
//  3. **String dates**: calendar days are `YYYY-MM-DD` strings and months are
//     `YYYY-MM` strings; both compare correctly with plain string ordering.
package models
