package constants

import (
	"fmt"
	"strings"
)

// Channel is a sales channel with a fixed commission rate.
type Channel string

const (
	ChannelOwnMall         Channel = "own_mall"
	ChannelMusinsa         Channel = "musinsa"
	ChannelSmartStore      Channel = "smart_store"
	ChannelDepartmentStore Channel = "department_store"
)

// Channels lists every channel in display order.
var Channels = []Channel{
	ChannelOwnMall,
	ChannelMusinsa,
	ChannelSmartStore,
	ChannelDepartmentStore,
}

// FeeRate returns the commission rate in [0,1].
func (c Channel) FeeRate() (float64, error) {
	switch c {
	case ChannelOwnMall:
		return 0.035, nil
	case ChannelMusinsa:
		return 0.30, nil
	case ChannelSmartStore:
		return 0.06, nil
	case ChannelDepartmentStore:
		return 0.35, nil
	default:
		return 0, fmt.Errorf("unknown channel %q", string(c))
	}
}

// Label is the name shown in the form and written into saved scraps.
func (c Channel) Label() string {
	switch c {
	case ChannelOwnMall:
		return "자사몰 (3.5%)"
	case ChannelMusinsa:
		return "무신사 (30%)"
	case ChannelSmartStore:
		return "스마트스토어 (6%)"
	case ChannelDepartmentStore:
		return "백화점 (35%)"
	default:
		return string(c)
	}
}

func (c Channel) Valid() bool {
	_, err := c.FeeRate()
	return err == nil
}

// ParseChannel accepts either the key ("musinsa") or the label ("무신사 (30%)").
func ParseChannel(s string) (Channel, error) {
	s = strings.TrimSpace(s)
	for _, c := range Channels {
		if string(c) == s || c.Label() == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown channel %q", s)
}
