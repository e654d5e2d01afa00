package get

import (
	"net/http"

	"github.com/go-chi/render"

	"hat-costing/internal/constants"
)

type ChannelOption struct {
	Key     constants.Channel `json:"key"`
	Label   string            `json:"label"`
	FeeRate float64           `json:"fee_rate"`
}

func GetChannels() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options := make([]ChannelOption, 0, len(constants.Channels))
		for _, c := range constants.Channels {
			rate, _ := c.FeeRate()
			options = append(options, ChannelOption{Key: c, Label: c.Label(), FeeRate: rate})
		}

		render.JSON(w, r, options)
	}
}
