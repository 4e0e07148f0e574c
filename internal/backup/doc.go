// Package backup rotates suffix-numbered backup copies before a save
// overwrites an existing file.
//
// Slot 1 is the newest backup and the highest slot the oldest. Rotation
// copies the current file to a temporary name first, shifts the chain up by
// renames, moves the temporary copy into slot 1, and deletes slots beyond the
// retention count last. A failure before the temporary copy completes aborts
// the save; failures after that point degrade to warnings or abort according
// to policy. The original file is never touched by rotation, so a fatal
// backup error always precedes the overwrite.
package backup
