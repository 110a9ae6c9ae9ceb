package config

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*SizeValue)(nil)

// ParseSize parses a byte count. Accepts plain decimal, 0x-prefixed hex and
// humanized sizes such as "4KiB" or "1M" (SI suffixes are powers of 1000,
// IEC suffixes powers of 1024).
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty size string")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseInt(s[2:], 16, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid size: %q", s)
		}
		return n, nil
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("invalid size: %q (negative)", s)
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size: %q", s)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("invalid size: %q (too large)", s)
	}
	return int64(n), nil
}

// SizeValue is a pflag.Value holding a byte count parsed with ParseSize.
type SizeValue struct {
	n *int64
}

// NewSizeValue binds a SizeValue to p.
func NewSizeValue(p *int64) *SizeValue {
	return &SizeValue{n: p}
}

func (v *SizeValue) Set(s string) error {
	n, err := ParseSize(s)
	if err != nil {
		return err
	}
	*v.n = n
	return nil
}

func (v *SizeValue) String() string {
	if v.n == nil {
		return "0"
	}
	return strconv.FormatInt(*v.n, 10)
}

func (*SizeValue) Type() string { return "size" }
