package pacer

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/charlie0129/breathe/pkg/technique"
)

// Prompt prints the technique menu to out and reads one answer from in.
// An empty answer, end of input, or an unknown entry selects box breathing.
func Prompt(in io.Reader, out io.Writer) (technique.Technique, error) {
	fmt.Fprintln(out, "Mindful Breathing Visualizer")
	for i, t := range technique.Presets() {
		fmt.Fprintf(out, "%d. %s\n", i+1, t.Name)
	}
	fmt.Fprintf(out, "Select a technique (1-%d): ", len(technique.Presets()))

	choice, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return technique.Technique{}, fmt.Errorf("failed to read technique choice: %w", err)
	}

	return technique.FromChoice(choice), nil
}
