package password

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/trustelem/zxcvbn"
)

// ErrWeakPassword is returned when the entropy estimate is below the
// configured minimum score.
var ErrWeakPassword = errors.New("password too weak")

// ErrBreachedPassword is returned when the candidate's digest suffix is
// found in the breach corpus.
var ErrBreachedPassword = errors.New("password found in breach corpus")

const (
	// DefaultBreachEndpoint is the public k-anonymized range API.
	DefaultBreachEndpoint = "https://api.pwnedpasswords.com/range"

	defaultMinScore      = 3
	defaultBreachTimeout = 3 * time.Second

	breachPrefixLen = 5
	maxCorpusBody   = 4 << 20
)

// StrengthConfig controls the acceptability pipeline.
//
// StrengthConfig instances are intended to be configured during
// initialization and then treated as immutable.
type StrengthConfig struct {
	// MinScore is the minimum zxcvbn score (0-4) a candidate must reach.
	// Zero selects the default of 3.
	MinScore int

	// Endpoint is the breach-corpus range URL, queried as GET
	// {Endpoint}/{prefix}. Zero selects DefaultBreachEndpoint.
	Endpoint string

	// Timeout bounds a single corpus lookup. Zero selects 3s. The
	// fail-open policy applies once the timeout elapses.
	Timeout time.Duration
}

// Strength runs the two-stage password acceptability pipeline: a local
// entropy gate followed by a k-anonymized breach-corpus gate.
//
// Strength is safe for concurrent use.
type Strength struct {
	minScore int
	endpoint string
	client   *http.Client
}

// NewStrength validates cfg and returns a Strength checker. A nil client
// selects a default http.Client bound by the configured timeout; tests
// inject a client pointed at a fake corpus.
func NewStrength(cfg StrengthConfig, client *http.Client) (*Strength, error) {
	if cfg.MinScore == 0 {
		cfg.MinScore = defaultMinScore
	}
	if cfg.MinScore < 1 || cfg.MinScore > 4 {
		return nil, errors.New("invalid minimum score")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultBreachEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultBreachTimeout
	}
	if cfg.Timeout < 0 {
		return nil, errors.New("invalid breach timeout")
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	return &Strength{
		minScore: cfg.MinScore,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		client:   client,
	}, nil
}

// Check runs the pipeline against candidate. It returns nil when the
// candidate is acceptable, ErrWeakPassword or ErrBreachedPassword when a
// gate rejects it. The entropy gate always runs; the breach gate only runs
// for candidates that pass it.
func (s *Strength) Check(ctx context.Context, candidate string) error {
	if zxcvbn.PasswordStrength(candidate, nil).Score < s.minScore {
		return ErrWeakPassword
	}

	breached, err := s.lookupBreach(ctx, candidate)
	if err != nil {
		// Deliberate fail-open: registration availability must not depend
		// on the corpus service. A lookup failure is collapsed to
		// "not breached" here and nowhere else.
		log.Print("authpair: breach corpus lookup failed, allowing candidate")
		return nil
	}
	if breached {
		return ErrBreachedPassword
	}

	return nil
}

// lookupBreach queries the corpus by digest prefix. Only the first five hex
// characters of the SHA-1 digest leave the process.
func (s *Strength) lookupBreach(ctx context.Context, candidate string) (bool, error) {
	sum := sha1.Sum([]byte(candidate))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))
	prefix := digest[:breachPrefixLen]
	suffix := digest[breachPrefixLen:]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/"+prefix, nil)
	if err != nil {
		return false, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("breach corpus status %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(io.LimitReader(resp.Body, maxCorpusBody))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		candidateSuffix, _, _ := strings.Cut(line, ":")
		if strings.EqualFold(candidateSuffix, suffix) {
			return true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}

	return false, nil
}
