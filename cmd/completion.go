package cmd

import (
	"github.com/etnz/ledgerview"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the command line for shell completion.
func Completion() *complete.Command {
	windows := make(predict.Set, len(ledgerview.Windows))
	for i, w := range ledgerview.Windows {
		windows[i] = string(w)
	}
	query := func(extra map[string]complete.Predictor) *complete.Command {
		flags := map[string]complete.Predictor{
			"start":     predict.Nothing,
			"end":       predict.Nothing,
			"window":    windows,
			"account":   predict.Something,
			"vendor":    predict.Something,
			"category":  predict.Something,
			"direction": predict.Set{string(ledgerview.Inflow), string(ledgerview.Outflow)},
			"q":         predict.Something,
			"currency":  predict.Set{"USD", "EUR", "GBP", "CAD"},
		}
		for k, v := range extra {
			flags[k] = v
		}
		return &complete.Command{Flags: flags}
	}

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"resolve": query(nil),
			"summary": query(map[string]complete.Predictor{"top": predict.Something}),
			"balance": query(map[string]complete.Predictor{"anchor": predict.Something, "highlight": predict.Something}),
			"rollup": query(map[string]complete.Predictor{
				"by":  predict.Set{"account", "vendor"},
				"net": predict.Nothing,
				"all": predict.Nothing,
			}),
			"serve": {Flags: map[string]complete.Predictor{"addr": predict.Something}},
		},
		Flags: map[string]complete.Predictor{
			"config":    predict.Files("*.yaml"),
			"env":       predict.Files("*"),
			"f":         predict.Files("*.json"),
			"log-level": predict.Set{"debug", "info", "warn", "error"},
		},
	}
}
