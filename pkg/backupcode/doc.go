// Package backupcode creates, hashes, and consumes single-use recovery codes
// that substitute for a TOTP code when the authenticator device is
// unavailable.
//
// Each code is 4 cryptographically random bytes rendered as 8 uppercase hex
// characters. Only SHA-256 digests of codes are ever stored; the plaintext
// exists transiently in the enrollment response. Candidate input is
// normalized (trimmed, uppercased) before hashing, and all comparisons are
// constant-time.
//
// Consume implements the single-use guarantee at the slice level: a matching
// code is removed from the stored list exactly once, and a second submission
// of the same code finds no hash to match. Persistence layers are expected to
// apply the removal atomically; see the twofactor package's Storage contract.
//
// # Usage
//
//	codes, err := backupcode.Generate(backupcode.DefaultCount)
//	if err != nil {
//		// handle error
//	}
//	hashes := make([]string, len(codes))
//	for i, c := range codes {
//		hashes[i] = backupcode.Hash(c)
//	}
//
//	// later, during verification:
//	remaining, ok := backupcode.Consume(hashes, submitted)
package backupcode
