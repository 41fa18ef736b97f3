package refindex

import (
	"strings"

	"github.com/agentstation/wilayah/pkg/errors"
)

// Policy decides which canonical name survives a duplicate key.
type Policy string

const (
	// PolicyFirst keeps the first name seen in table order.
	PolicyFirst Policy = "first"
	// PolicyLast keeps the last name seen in table order.
	PolicyLast Policy = "last"
	// PolicyReject fails the build.
	PolicyReject Policy = "reject"
)

// String returns the policy name.
func (p Policy) String() string {
	return string(p)
}

// ParsePolicy converts a policy name to a Policy. The empty string is PolicyFirst.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyFirst:
		return PolicyFirst, nil
	case PolicyLast, PolicyReject:
		return p, nil
	default:
		return "", errors.NewValidationError("duplicate_policy", s, "must be one of first, last, reject")
	}
}

type options struct {
	policy Policy
}

func defaultOptions() *options {
	return &options{policy: PolicyFirst}
}

// Option is a function that configures Build.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithDuplicatePolicy sets how duplicate keys are resolved.
func WithDuplicatePolicy(policy Policy) Option {
	return func(o *options) error {
		p, err := ParsePolicy(string(policy))
		if err != nil {
			return err
		}
		o.policy = p
		return nil
	}
}
