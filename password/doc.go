// Package password implements credential hashing and the registration-time
// password acceptability pipeline.
//
// [Hasher] wraps bcrypt as a one-way, verify-only digest: Hash produces a
// salted digest and Verify reports whether a plaintext matches it. A digest
// that cannot be parsed verifies as false; Verify never returns an error and
// never panics.
//
// [Strength] gates registration with two ordered, short-circuiting checks:
// a local entropy estimate (zxcvbn score, 0–4) and a k-anonymized lookup
// against a breach corpus. Only the first five hex characters of the
// candidate's SHA-1 digest are ever sent over the wire. A breach-corpus
// failure is deliberately treated as "not breached" (fail-open) so that
// registration availability never depends on the corpus service's uptime.
package password
