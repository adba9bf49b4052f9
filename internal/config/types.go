package config

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// SizeBytes is a byte count written either as an integer or as a human
// readable string such as "64KiB" or "1MB".
type SizeBytes uint64

func (s *SizeBytes) UnmarshalTOML(v any) error {
	switch raw := v.(type) {
	case int64:
		if raw < 0 {
			return fmt.Errorf("invalid size value: %d", raw)
		}
		*s = SizeBytes(raw)
		return nil
	case string:
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			*s = 0
			return nil
		}
		n, err := humanize.ParseBytes(trimmed)
		if err != nil {
			return fmt.Errorf("invalid size value: %q", raw)
		}
		*s = SizeBytes(n)
		return nil
	}
	return fmt.Errorf("invalid size value: %v", v)
}

func (s SizeBytes) String() string {
	return humanize.IBytes(uint64(s))
}
