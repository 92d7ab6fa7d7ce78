package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/charlie0129/breathe/pkg/pacer"
	"github.com/charlie0129/breathe/pkg/technique"
)

type phaseJSON struct {
	Name            string         `json:"name"`
	Kind            technique.Kind `json:"kind"`
	DurationSeconds int            `json:"durationSeconds"`
}

type techniqueJSON struct {
	Key          string      `json:"key"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	CycleSeconds int         `json:"cycleSeconds"`
	Phases       []phaseJSON `json:"phases"`
}

func toTechniqueJSON(t technique.Technique) techniqueJSON {
	out := techniqueJSON{
		Key:          t.Key,
		Name:         t.Name,
		Description:  t.Description,
		CycleSeconds: int(t.CycleDuration() / time.Second),
	}
	for _, ph := range t.Phases {
		out.Phases = append(out.Phases, phaseJSON{
			Name:            ph.Name,
			Kind:            ph.Kind(),
			DurationSeconds: int(ph.Duration / time.Second),
		})
	}
	return out
}

func formatPhases(t technique.Technique) string {
	parts := make([]string, 0, len(t.Phases))
	for _, ph := range t.Phases {
		parts = append(parts, pacer.PhaseColor(ph.Kind()).Sprintf("%s %ds", ph.Name, int(ph.Duration/time.Second)))
	}
	return strings.Join(parts, " → ")
}

func NewTechniquesCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "techniques",
		Short:   "List breathing techniques",
		GroupID: gBasic,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			presets := technique.Presets()

			if asJSON {
				out := make([]techniqueJSON, 0, len(presets))
				for _, t := range presets {
					out = append(out, toTechniqueJSON(t))
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			w := cmd.OutOrStdout()
			for i, t := range presets {
				fmt.Fprintf(w, "%d. %s (%s)\n", i+1, bold("%s", t.Name), t.Key)
				fmt.Fprintf(w, "   %s\n", t.Description)
				fmt.Fprintf(w, "   %s  [%s per cycle]\n", formatPhases(t), t.CycleDuration())
				if i < len(presets)-1 {
					fmt.Fprintln(w)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
